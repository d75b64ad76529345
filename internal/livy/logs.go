package livy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"livybatch/internal/apperrors"
	"livybatch/internal/jsonpath"
)

// logPageLines is the window size for one log request.
const logPageLines = 100

// LogPage is one fetched window of batch log output.
type LogPage struct {
	From  int64    // actual starting offset of Lines
	Total int64    // server-reported total line count
	Lines []string // raw log lines in original order
}

// LogPage fetches one window of log lines starting at the given offset.
func (c *Client) LogPage(ctx context.Context, batchID, from, size int64) (*LogPage, error) {
	path := fmt.Sprintf("%s/%d/log?from=%d&size=%d", batchesEndpoint, batchID, from, size)
	resp, err := c.rest.Get(ctx, path)
	if err != nil {
		return nil, apperrors.Transport("livy.logs", err)
	}

	lines, err := jsonpath.StringList("livy.logs", resp.Body, resp.ContentType(), "log")
	if err != nil {
		return nil, err
	}
	actualFrom, err := jsonpath.Int64("livy.logs", resp.Body, resp.ContentType(), "from")
	if err != nil {
		return nil, err
	}
	total, err := jsonpath.Int64("livy.logs", resp.Body, resp.ContentType(), "total")
	if err != nil {
		return nil, err
	}

	return &LogPage{From: actualFrom, Total: total, Lines: lines}, nil
}

// DrainLogs fetches the batch's full log in windows of 100 lines and
// emits every line to the sink in original order, returning the number
// of lines drained. Escaped newline sequences inside a line are
// rendered as real line breaks. A malformed page aborts the drain
// immediately.
func (c *Client) DrainLogs(ctx context.Context, batchID int64, sink *slog.Logger) (int64, error) {
	banner := strings.Repeat("-", 50)
	sink.Info(fmt.Sprintf("%sFull log for batch %d%s", banner, batchID, banner))

	var from, drained int64
	for {
		page, err := c.LogPage(ctx, batchID, from, logPageLines)
		if err != nil {
			return drained, err
		}

		for _, line := range page.Lines {
			sink.Info(strings.ReplaceAll(line, `\n`, "\n"))
		}
		drained += int64(len(page.Lines))

		if page.From+int64(len(page.Lines)) >= page.Total {
			sink.Info(fmt.Sprintf("%sEnd of full log for batch %d%s", banner, batchID, banner))
			return drained, nil
		}
		from = page.From + int64(len(page.Lines))
	}
}
