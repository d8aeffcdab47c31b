package command

/*
Package `command` lets a caller address live objects of a running session and invoke named operations on them.

An address is a selector path: an ordered list of (category, selector) steps walked from the session root, eg.
`group["b"]` then `layout[0]`. Paths are built with a `Tree`: `Into` narrows into a category reachable from the
current node, `Select` picks one instance of that category (once), and `Command` terminates the path into a
`Reference`. Nothing is resolved while building; the path is plain data until a `Reference` is called, so it
can cross a process boundary unchanged.

What calling a `Reference` does depends on the `CallFunc` the tree was built with:
  - `Dispatcher.Call` dispatches in process,
  - the client in `server/client` sends the request over the session socket,
  - `Commander` returns a deferred `Call` to be checked against session state and run later (key bindings).

The `Dispatcher` is the only place where failures are classified. It never panics past its boundary, every
outcome becomes a `Response` with one of three statuses:
  - Success, with the operation result,
  - Error, with a message for the caller ("No such object.", "No such command." or a `CommandError` message),
  - Exception, with a formatted trace of an unexpected failure.

Objects expose operations through static tables (`Table`), not through reflection.
*/
