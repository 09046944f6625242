// Package tagpages turns a site's posts and existing pages into the full set
// of tag output records for one build: a page per tag and page type, the tag
// cloud, and the paginated tag index.
//
// Builder.Build never writes files. Rendering is left to the caller, which
// binds each TagPage.Data and IndexPage.Pager.Data() to its layout.
package tagpages
