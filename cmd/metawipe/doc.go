// Command metawipe walks a directory tree and strips embedded metadata from
// every regular file it finds.
package main
