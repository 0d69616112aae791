// SPDX-License-Identifier: MPL-2.0

// Package launch runs the launch resolution flow: read pwa.json, resolve the
// package identity, find Microsoft Edge, check its version, start it with
// the PWA flags and wait for it to exit.
//
// The flow is a fixed sequence of states:
//
//	LoadConfig → ResolveIdentity → DiscoverBrowser → CheckVersion → Launch → Await → Done
//
// with NotInstalled and TooOld as the redirecting failure exits. Each
// transition is written to the diagnostic sink. Nothing is retried.
package launch
