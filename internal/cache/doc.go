// Package cache describes the per-user cache directory of the program and the
// repository clones kept inside it.
//
// The layout is flat: every repository lives in a direct child of the program
// directory, named after the last segment of its URL.
//
//	<user cache root>/
//	└── release-maker/
//	    ├── serenity/
//	    └── release-maker/
//
// There is no index or manifest. A repository is cached when its directory
// exists, and every query goes to the filesystem.
//
// Nothing here locks the directory. Two processes cloning the same URL at the
// same time race on the destination, and the git engine's own "destination
// must be empty" check is the only guard.
package cache
