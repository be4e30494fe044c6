// Package common keeps enums shared by configuration and the cursor pipeline.
// They live in a separate package so config does not have to import cursor.
package common

//go:generate go tool go-enum --names --marshal --nocase

// Abstract cursor role, independent of visual theme.
// ENUM(default, pointer, text, progress, wait, allScroll, ewResize, nsResize, neswResize, nwseResize)
type CursorKind int

// Discrete size bucket controlling asset resolution and hotspot scaling.
// ENUM(small, medium, large)
type SizeTier int

// Color variants of the built-in cursor theme.
// ENUM(white, gray)
type ColorVariant string
