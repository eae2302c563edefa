// Package rest implements the Backend contract against the local HTTP
// control plane.
//
// # Protocol
//
//	┌──────────────────────────────────┐
//	│   JSON request/response bodies   │
//	├──────────────────────────────────┤
//	│   HTTP 1.1 (localhost only)      │
//	└──────────────────────────────────┘
//
// A session starts with a handshake POST against the well-known endpoint
// (http://localhost:54235/razer/chromasdk). The response carries a session
// id and a new base address; every subsequent call targets that address.
// While the session is active a keep-alive PUT is issued every second.
//
// Every response carries two independent success signals: the HTTP status
// and a logical result flag in the body. Both are checked on every call; a
// 200 with a false result is a logical failure, not a transport failure.
//
// # Lifecycle
//
//	Uninitialized ──Initialize──▶ Initializing ──handshake ok──▶ Active
//	      ▲                            │                           │
//	      └────────handshake failed────┘             Uninitialize/Close
//	                                                               │
//	                                                               ▼
//	                                                           Disposed
//
// Disposed is terminal. The keep-alive timer is armed only in Active, and
// stopping it is tied to the transitions out of Active: after Close returns
// no new tick can start, though a tick already in flight may complete.
//
// Device query and hardware event registration are not part of the control
// plane's surface; those operations fail with backend.ErrUnsupportedOperation
// without attempting a network call.
//
// A failed keep-alive is fatal for the session. It is reported through the
// session error handler (SetSessionErrorHandler) and the event logger, never
// dropped.
package rest
