// Package fetch downloads install artifacts and expands driver archives.
//
// Fetcher.Fetch places the body of a URL at dir/basename(url). If that file
// already exists the call returns at once without touching the network:
// presence alone counts as installed and the content is never checked. A
// transfer is written to a temporary file next to the destination and only
// renamed into place once it is complete, so an interrupted download never
// leaves a file that a later run would skip.
//
// Extractor.FetchAndExtract fetches a zip archive the same way and expands
// every entry into the same directory, keeping file modes so that drivers
// such as chromedriver stay executable.
//
// Errors are *errors.InstallError values: NETWORK for transport failures and
// non-2xx responses, FILESYSTEM for local write failures, EXTRACT for
// anything that goes wrong while expanding an archive.
package fetch
