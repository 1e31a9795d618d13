// Package object implements the objkit dispatch substrate.
//
// This package contains:
//   - Interface descriptors with interned method selectors
//   - Concrete type definitions with single-inheritance chains
//   - VTable construction with derived-overrides-base resolution
//   - Instance layout and chain-offset slot access
//   - Interface handles with borrowed, owned and shared ownership
package object
