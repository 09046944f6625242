// Package content reads the site from disk: Markdown posts become
// taxonomy.Posts and already-rendered HTML files become paginate.Pages that
// can host the first tag index page.
package content
