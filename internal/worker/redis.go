package worker

import (
	"io"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mason-leap-lab/redeo/resp"
)

// queueConn speaks just enough RESP to pop Sidekiq jobs off a list.
type queueConn struct {
	w *resp.RequestWriter
	r resp.ResponseReader
}

func newQueueConn(rw io.ReadWriter) *queueConn {
	return &queueConn{
		w: resp.NewRequestWriter(rw),
		r: resp.NewResponseReader(rw),
	}
}

func (c *queueConn) command(cmd string, args ...string) error {
	c.w.WriteCmdString(cmd, args...)
	return c.w.Flush()
}

func (c *queueConn) auth(password string) error {
	if err := c.command("AUTH", password); err != nil {
		return err
	}
	return readOK(c.r)
}

func (c *queueConn) selectDB(index int) error {
	if err := c.command("SELECT", strconv.Itoa(index)); err != nil {
		return err
	}
	return readOK(c.r)
}

// brpop blocks for up to timeout on queue. An empty key and payload mean the
// timeout expired.
func (c *queueConn) brpop(queue string, timeout time.Duration) (key, payload string, err error) {
	secs := strconv.Itoa(int(timeout / time.Second))
	if err := c.command("BRPOP", queue, secs); err != nil {
		return "", "", err
	}
	return readBRPOP(c.r)
}

func readOK(r resp.ResponseReader) error {
	t, err := r.PeekType()
	if err != nil {
		return err
	}
	switch t {
	case resp.TypeInline:
		line, err := r.ReadInlineString()
		if err != nil {
			return err
		}
		if line != "OK" {
			return errors.Newf("redis not OK: %s", line)
		}
		return nil
	case resp.TypeError:
		return readError(r)
	default:
		return errors.Newf("unexpected reply type %v", t)
	}
}

func readError(r resp.ResponseReader) error {
	msg, err := r.ReadError()
	if err != nil {
		return err
	}
	return errors.Newf("redis error: %s", msg)
}

func readBRPOP(r resp.ResponseReader) (key string, payload string, err error) {
	t, err := r.PeekType()
	if err != nil {
		return "", "", err
	}
	switch t {
	case resp.TypeNil:
		return "", "", r.ReadNil()
	case resp.TypeArray:
		n, err := r.ReadArrayLen()
		// The reader rejects the null array *-1 after consuming its line;
		// like *0 it means the timeout expired.
		if resp.IsProtocolError(err) {
			return "", "", nil
		}
		if err != nil {
			return "", "", err
		}
		if n < 2 {
			for ; n > 0; n-- {
				if _, err := r.ReadBulkString(); err != nil {
					return "", "", err
				}
			}
			return "", "", nil
		}
		if key, err = r.ReadBulkString(); err != nil {
			return "", "", err
		}
		if payload, err = r.ReadBulkString(); err != nil {
			return "", "", err
		}
		for n -= 2; n > 0; n-- {
			if _, err := r.ReadBulkString(); err != nil {
				return "", "", err
			}
		}
		return key, payload, nil
	case resp.TypeBulk:
		payload, err = r.ReadBulkString()
		return "", payload, err
	case resp.TypeError:
		return "", "", readError(r)
	default:
		return "", "", errors.Newf("unexpected reply type %v", t)
	}
}
