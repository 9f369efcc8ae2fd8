// Package types defines the core data model shared by every stage of
// the install pipeline: scanned entries, resolved link targets, the
// four-way filesystem state classification, and the actions and plans
// the reconciler builds from them.
//
// The package deliberately carries no behavior beyond small helpers;
// scanning, resolving, classifying and reconciling live in their own
// packages so each stage can be tested in isolation.
package types
