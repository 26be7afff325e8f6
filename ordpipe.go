// Package ordpipe ingests a municipality's published regulatory text,
// extracts structured sections, splits them into retrieval-sized passages,
// and stores those passages for semantic retrieval. It covers the acquisition
// side (a browser-driven scraper for a JavaScript-rendered code-of-ordinances
// site plus PDF and word-processor loaders) and the multi-strategy chunking
// engine that prepares passages for embedding.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package ordpipe
