package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/adapter"
	"github.com/cuemby/naxml-ingest/pkg/naxml"
	"github.com/cuemby/naxml-ingest/pkg/types"
)

const previewLimit = 5

// FilesystemChecker implements Checker and the POS connection-test
// contract against a vendor exchange directory: it confirms the
// configured paths exist, samples the outbox, and tries to classify and
// parse one pending file to report the POS version it observed.
type FilesystemChecker struct {
	Integration *types.POSIntegration
}

func (c *FilesystemChecker) Type() CheckType { return CheckTypeFilesystem }

func (c *FilesystemChecker) Check(ctx context.Context) Result {
	start := time.Now()
	test := c.Test(ctx)
	return Result{
		Healthy:   test.Success,
		Message:   test.Message,
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}

// Test runs the full connection-test contract and returns the
// operator-facing result: reachability, writability, a filename preview,
// and the POS version observed in the first classifiable file.
func (c *FilesystemChecker) Test(ctx context.Context) *types.ConnectionTestResult {
	start := time.Now()
	result := func(success bool, code, msg string) *types.ConnectionTestResult {
		return &types.ConnectionTestResult{
			Success:   success,
			Message:   msg,
			ErrorCode: code,
			LatencyMS: time.Since(start).Milliseconds(),
		}
	}

	paths, err := adapter.ResolvePaths(c.Integration)
	if err != nil {
		return result(false, "PATH_TRAVERSAL", err.Error())
	}

	info, err := os.Stat(paths.Outbox)
	if err != nil {
		return result(false, "OUTBOX_UNREACHABLE", fmt.Sprintf("outbox %q: %v", paths.Outbox, err))
	}
	if !info.IsDir() {
		return result(false, "OUTBOX_NOT_DIR", fmt.Sprintf("outbox %q is not a directory", paths.Outbox))
	}

	probe := filepath.Join(paths.Inbox, ".naxml-connection-probe")
	if werr := os.WriteFile(probe, []byte("ok"), 0o644); werr != nil {
		return result(false, "INBOX_NOT_WRITABLE", fmt.Sprintf("inbox %q: %v", paths.Inbox, werr))
	}
	_ = os.Remove(probe)

	entries, err := os.ReadDir(paths.Outbox)
	if err != nil {
		return result(false, "OUTBOX_UNREADABLE", err.Error())
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := result(true, "", "exchange directories reachable")
	if len(names) > previewLimit {
		out.Preview = names[:previewLimit]
	} else {
		out.Preview = names
	}

	layout := adapter.LayoutFor(c.Integration.POSType)
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}
		if _, ok := layout.Classify(name); !ok {
			continue
		}
		data, rerr := os.ReadFile(filepath.Join(paths.Outbox, name))
		if rerr != nil {
			continue
		}
		if parsed, perr := naxml.Parse(data); perr == nil {
			out.POSVersion = parsed.Document.Version()
			break
		}
	}

	return out
}
