// Package weve contains the Weve integration bounded context.
// This context manages the connection between the warehouse/POS system and the
// Weve e-commerce platform.
//
// Key concepts:
//   - Client: Port interface for the Weve platform API (auth, products, orders)
//   - Session: Value object for the single authenticated identity against Weve
//   - SessionStore: Process-wide holder of the active session with lazy expiry
//   - RemoteProduct / OutboundOrder: Wire-shaped value objects crossing the boundary
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (HTTP client, simulator) are in the infrastructure layer
package weve
