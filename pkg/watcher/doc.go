/*
Package watcher runs one cooperative polling loop per store against its
POS integration's outbox directory.

Each cycle lists the outbox, classifies every filename against the
vendor's glob table, hashes file contents to gate duplicate content via
the FileLog index, and dispatches the bytes to a DocumentHandler supplied
by pkg/processor. The FileLog transitions PENDING -> PROCESSING ->
SUCCESS|FAILED around the handler call, and, when the integration's
ArchiveProcessedFiles is set, successfully or
unsuccessfully processed files are relocated into the archive or error
directory with an ISO-8601 timestamp prefix - by atomic rename where
possible, falling back to copy-then-unlink across filesystem boundaries.

	ticker := time.NewTicker(interval)
	for {
		select {
		case <-ticker.C:
			watcher.Poll(ctx)
		case <-stopCh:
			return
		}
	}

The poll interval comes from the integration's configured value: a value
below MinPollIntervalSeconds (including an unset zero) falls back to
DefaultPollIntervalSec, and one above MaxPollIntervalSeconds is capped at
it.
*/
package watcher
