package worker

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// jobReply is a BRPOP reply carrying payload from queue:default.
func jobReply(payload string) string {
	return fmt.Sprintf("*2\r\n$13\r\nqueue:default\r\n$%d\r\n%s\r\n", len(payload), payload)
}

// fakeRedis answers successive BRPOP commands with replies, then waits for
// the next command and hangs up.
func fakeRedis(t *testing.T, replies ...string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		readCommand := func() {
			// *3, then a length line and a value line per argument
			for i := 0; i < 7; i++ {
				if _, err := r.ReadString('\n'); err != nil {
					return
				}
			}
		}
		for _, reply := range replies {
			readCommand()
			if _, err := conn.Write([]byte(reply)); err != nil {
				return
			}
		}
		readCommand()
	}()
	return ln.Addr().String()
}

func TestServeSkipsForeignJobs(t *testing.T) {
	addr := fakeRedis(t, jobReply(`{"class":"MailerWorker","args":[1]}`))
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewService(nil, Config{RedisAddr: addr, Queue: "queue:default"}, zap.New(core))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	delay, _ := svc.serve(ctx)

	if delay != reconnectDelay {
		t.Fatalf("expected reconnect delay %v, got %v", reconnectDelay, delay)
	}
	if n := logs.FilterMessage("skipping job").Len(); n != 1 {
		t.Fatalf("expected one skipped job, got %d", n)
	}
}

func TestServeKeepsPollingAfterTimeout(t *testing.T) {
	addr := fakeRedis(t, "*-1\r\n", "*0\r\n", jobReply(`{"class":"MailerWorker","args":[1]}`))
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewService(nil, Config{RedisAddr: addr, Queue: "queue:default"}, zap.New(core))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	delay, err := svc.serve(ctx)

	if err != nil && strings.Contains(err.Error(), "multibulk") {
		t.Fatalf("timeout reply treated as a read error: %v", err)
	}
	if delay != reconnectDelay {
		t.Fatalf("expected reconnect delay %v, got %v", reconnectDelay, delay)
	}
	if n := logs.FilterMessage("skipping job").Len(); n != 1 {
		t.Fatalf("expected the job after the timeouts to be read, got %d", n)
	}
}

func TestServeLogsInvalidJobs(t *testing.T) {
	addr := fakeRedis(t, jobReply(`not json`))
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewService(nil, Config{RedisAddr: addr, Queue: "queue:default"}, zap.New(core))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	svc.serve(ctx)

	if n := logs.FilterMessage("invalid job").Len(); n != 1 {
		t.Fatalf("expected one invalid job log, got %d", n)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	svc := NewService(nil, Config{RedisAddr: addr, Queue: "queue:default"}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
