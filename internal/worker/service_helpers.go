package worker

import (
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
)

type sidekiqJob struct {
	Class string            `json:"class"`
	Args  []json.RawMessage `json:"args"`
	Queue string            `json:"queue"`
}

// errForeignJob marks jobs meant for another worker class.
var errForeignJob = errors.New("job class not handled by this worker")

// decodeJob extracts the test run id from a Sidekiq job payload.
func decodeJob(payload string) (int64, error) {
	var job sidekiqJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return 0, errors.Wrap(err, "invalid job json")
	}
	if job.Class != "RubyWorker" && job.Class != "GoWorker" {
		return 0, errors.Wrapf(errForeignJob, "class=%s", job.Class)
	}
	if len(job.Args) == 0 {
		return 0, errors.New("job missing test_run_id")
	}
	id, err := parseInt64(job.Args[0])
	if err != nil {
		return 0, errors.Wrap(err, "job test_run_id")
	}
	if id == 0 {
		return 0, errors.New("job missing test_run_id")
	}
	return id, nil
}

// parseInt64 extracts an int64 from a Sidekiq payload argument that may be encoded
// either as a JSON number or as a quoted string.
func parseInt64(raw json.RawMessage) (int64, error) {
	var asNumber int64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber, nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return 0, errors.New("empty string")
		}
		v, err := strconv.ParseInt(asString, 10, 64)
		if err != nil {
			return 0, err
		}
		return v, nil
	}

	return 0, errors.Newf("unsupported arg: %s", string(raw))
}
