/*
Package health provides connection-test checks for POS file exchange
directories.

A NAXML integration has no network endpoint to ping - its "connectivity"
is the filesystem exchange root the POS vendor writes files into. The
FilesystemChecker verifies that the outbox is a reachable directory and
the inbox is writable, previews the pending outbox filenames, and reports
the POS version of the first pending file it can classify and parse. An
outbox with no such file still passes, with the version left empty.

	type Checker interface {
		Check(ctx context.Context) Result
		Type() CheckType
	}

Status tracking uses the same consecutive-failure hysteresis as any other
health check: a single missed poll cycle does not flip an integration to
unhealthy, only Config.Retries consecutive failures does.
*/
package health
