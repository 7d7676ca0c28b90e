package weve

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/aguulga/backend/internal/domain/catalog"
	"github.com/aguulga/backend/internal/domain/shared"
	"github.com/aguulga/backend/internal/domain/weve"
)

// syncPageLimit is the fixed page size requested from the Weve catalog
const syncPageLimit = 100

// SyncService reconciles the local product catalog with the Weve catalog.
// A full sync is single-flight: a second trigger while one is running is
// rejected, not queued. Category-scoped syncs bypass the guard.
type SyncService struct {
	client   weve.Client
	store    *weve.SessionStore
	products catalog.ProductRepository
	logger   *zap.Logger

	running atomic.Bool

	mu           sync.Mutex
	lastSyncTime *time.Time
}

// NewSyncService creates a new product sync service
func NewSyncService(client weve.Client, store *weve.SessionStore, products catalog.ProductRepository, logger *zap.Logger) *SyncService {
	return &SyncService{
		client:   client,
		store:    store,
		products: products,
		logger:   logger,
	}
}

// SyncProducts pulls every page of active Weve products and upserts them into
// the local catalog. Per-item failures are accumulated and never abort the
// batch; a page fetch failure stops pagination but keeps the partial counts.
func (s *SyncService) SyncProducts(ctx context.Context) *SyncResult {
	if !s.running.CompareAndSwap(false, true) {
		return &SyncResult{Success: false, AlreadyRunning: true, Message: "Product sync is already running"}
	}
	defer s.running.Store(false)

	if _, ok := s.store.Get(); !ok {
		return &SyncResult{Success: false, Message: "Not logged in to Weve"}
	}

	s.logger.Info("weve product sync started")
	result := &SyncResult{Success: true}
	activeOnly := true

	for page := 1; ; page++ {
		remotePage, err := s.client.FetchProducts(ctx, weve.ProductQuery{
			Page:       page,
			Limit:      syncPageLimit,
			ActiveOnly: &activeOnly,
		})
		if err != nil {
			result.Success = false
			result.Message = "Product sync stopped: catalog page fetch failed"
			result.Errors = append(result.Errors, fmt.Sprintf("page %d: %v", page, err))
			s.logger.Error("weve catalog page fetch failed", zap.Int("page", page), zap.Error(err))
			break
		}

		s.reconcilePage(ctx, remotePage.Products, nil, result)

		if int64(page*syncPageLimit) >= remotePage.Total {
			break
		}
	}

	s.recordCompletion()

	if result.Success {
		result.Message = fmt.Sprintf("Synced %d products (%d added, %d updated, %d skipped)",
			result.Processed(), result.ProductsAdded, result.ProductsUpdated, result.ProductsSkipped)
	}
	s.logger.Info("weve product sync finished",
		zap.Bool("success", result.Success),
		zap.Int("added", result.ProductsAdded),
		zap.Int("updated", result.ProductsUpdated),
		zap.Int("skipped", result.ProductsSkipped),
		zap.Int("errors", len(result.Errors)))
	return result
}

// SyncProductsByCategory pulls a single page of one Weve category and upserts
// it, tagging newly created products with the category id. This path is not
// protected by the single-flight guard and may overlap a full sync.
func (s *SyncService) SyncProductsByCategory(ctx context.Context, categoryID int64) *SyncResult {
	if _, ok := s.store.Get(); !ok {
		return &SyncResult{Success: false, Message: "Not logged in to Weve"}
	}

	activeOnly := true
	remotePage, err := s.client.FetchProducts(ctx, weve.ProductQuery{
		Page:       1,
		Limit:      syncPageLimit,
		CategoryID: &categoryID,
		ActiveOnly: &activeOnly,
	})
	if err != nil {
		s.logger.Error("weve category fetch failed", zap.Int64("categoryId", categoryID), zap.Error(err))
		return &SyncResult{
			Success: false,
			Message: "Category sync failed: catalog fetch failed",
			Errors:  []string{err.Error()},
		}
	}

	result := &SyncResult{Success: true}
	s.reconcilePage(ctx, remotePage.Products, &categoryID, result)
	result.Message = fmt.Sprintf("Synced %d products for category %d (%d added, %d updated, %d skipped)",
		result.Processed(), categoryID, result.ProductsAdded, result.ProductsUpdated, result.ProductsSkipped)
	return result
}

// LastSyncTime returns the completion timestamp of the most recent full sync
func (s *SyncService) LastSyncTime() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSyncTime == nil {
		return nil
	}
	t := *s.lastSyncTime
	return &t
}

// InProgress reports whether a full sync is currently running
func (s *SyncService) InProgress() bool {
	return s.running.Load()
}

// Status returns a point-in-time read of the sync state
func (s *SyncService) Status() *SyncStatus {
	return &SyncStatus{
		InProgress:   s.InProgress(),
		LastSyncTime: s.LastSyncTime(),
	}
}

func (s *SyncService) reconcilePage(ctx context.Context, products []weve.RemoteProduct, categoryID *int64, result *SyncResult) {
	for i := range products {
		remote := &products[i]
		if remote.ProductCode == "" && remote.Barcode == "" {
			// Unmatchable records are skipped rather than duplicated on rerun
			result.ProductsSkipped++
			continue
		}

		added, err := s.reconcileOne(ctx, remote, categoryID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("product %d (%s): %v", remote.ID, remote.LocalName(), err))
			continue
		}
		if added {
			result.ProductsAdded++
		} else {
			result.ProductsUpdated++
		}
	}
}

// reconcileOne matches a remote product by code or barcode and updates it in
// place, or creates a new local product when no match exists.
func (s *SyncService) reconcileOne(ctx context.Context, remote *weve.RemoteProduct, categoryID *int64) (added bool, err error) {
	local, err := s.products.FindByCodeOrBarcode(ctx, remote.ProductCode, remote.Barcode)
	switch {
	case err == nil:
		if err := local.Rename(remote.LocalName(), remote.NameEnglish); err != nil {
			return false, err
		}
		if err := local.SetRetailPrice(remote.Price); err != nil {
			return false, err
		}
		local.SetStockQuantity(remote.StockQuantity)
		if categoryID != nil {
			// Category sync re-tags matches but leaves their active flag alone
			local.AssignCategory(*categoryID)
		} else {
			local.SetActive(remote.IsActive)
		}
		if err := s.products.Save(ctx, local); err != nil {
			return false, err
		}
		return false, nil

	case errors.Is(err, shared.ErrNotFound):
		product, err := catalog.NewProduct(remote.LocalName(), remote.NameEnglish, remote.ProductCode, remote.Barcode)
		if err != nil {
			return false, err
		}
		if err := product.SetRetailPrice(remote.Price); err != nil {
			return false, err
		}
		product.SetStockQuantity(remote.StockQuantity)
		if categoryID != nil {
			// Products imported under a category start out sellable
			product.AssignCategory(*categoryID)
			product.SetActive(true)
		} else {
			product.SetActive(remote.IsActive)
		}
		if err := s.products.Save(ctx, product); err != nil {
			return false, err
		}
		return true, nil

	default:
		return false, err
	}
}

func (s *SyncService) recordCompletion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastSyncTime = &now
}
