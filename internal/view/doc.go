// Package view renders the site's HTML pages from templates embedded at
// build time. Every page shares one layout; pages are addressed by name
// ("home", "faculty/list", "errors/404") so callers stay decoupled from
// the template tree.
package view
