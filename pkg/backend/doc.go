// Package backend defines the contract every lighting backend implements
// and the error taxonomy its operations fail with.
//
// Two implementations exist:
//
//   - backend/native: the vendor SDK loaded in-process. Synchronous calls,
//     supports device query and hardware event registration.
//   - backend/rest: the local HTTP control plane reached through a discovery
//     handshake. Asynchronous network calls; device query and event
//     registration are a permanent capability gap.
//
// Callers that need to know whether an operation is worth attempting on the
// active backend ask Supports before calling; unsupported operations fail
// with ErrUnsupportedOperation without touching the transport.
//
// # Failure kinds
//
// Every failure is distinguishable by kind so callers can decide between
// retrying and abandoning:
//
//   - InitError: the handshake or native init did not produce a usable
//     session.
//   - CallError: a call failed at the transport, or the backend reported a
//     non-success status. Carries endpoint, HTTP status and result code.
//   - CreateError: the backend accepted a create call but returned no
//     effect id or a logical-failure flag.
//   - ErrUnsupportedOperation, ErrUnsupportedDevice, ErrInvalidState:
//     sentinels matched with errors.Is.
//
// The library never retries on its own; retry policy belongs to the caller.
package backend
