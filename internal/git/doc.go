// Package git opens and clones repositories through interchangeable git
// engines and reads the commit history used to build changelogs.
//
// An Engine only knows how to Clone and Open. Both return a Repository, an
// opaque handle that reports the URL of its "origin" remote and the commits of
// a remote-tracking branch. The set of Repository implementations is closed:
// the interface carries an unexported method, so handles can only come from
// the engines in this package.
//
// Three engines exist:
//
//   - GoGit uses the embedded go-git library and needs nothing installed.
//   - Exec runs the git executable found on PATH.
//   - Unimplemented fails every call with ErrNotImplemented.
//
// Every failure is returned as an *EngineError naming the operation and the
// path or URL involved. The cause can be matched with errors.Is against the
// sentinels declared in errors.go, whichever engine produced it.
package git
