// Package scoop extracts clean, structured articles from news web pages
// and enriches them with keywords, sentiment, entities, and summaries.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, whatlanggo/, gemini/).
package scoop
