/*
Package content supplies what application windows display.

Applications come from several sources merged into one Registry, later
sources winning per id:

  - the builtin applications (Builtin)
  - a YAML, TOML or JSON catalog file (LoadCatalogFile)
  - a directory of HTML, text and Markdown files (ScanDir)
  - a remote catalog fetched over HTTP (Fetcher)

Files are enriched on the way in: the media type and charset are detected,
text is decoded to UTF-8, HTML gets its title extracted and is optionally
sanitized.

The Registry implements window.ContentProvider. Unknown applications open
with a placeholder payload.
*/
package content
