// Package native implements the Backend contract on top of the vendor SDK
// loaded in-process.
//
// Calls are synchronous into the native layer. Unlike the control plane,
// this backend supports device queries and hardware event registration;
// there is no session, no base address and no keep-alive traffic.
//
// The native entry points are abstracted behind the Library interface so the
// lifecycle and error mapping are testable everywhere. The real loader
// (LoadSystemLibrary) resolves the vendor DLL and is only available on
// Windows; on other platforms it fails with ErrSDKUnavailable.
package native
