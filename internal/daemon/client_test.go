package daemon

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
)

// startMockDaemon creates a Unix socket that accepts one connection,
// reads a command, and writes back a canned response. The received
// command is delivered on the returned channel.
func startMockDaemon(t *testing.T, response Response) (string, <-chan Command, func()) {
	t.Helper()

	dir := t.TempDir()
	sockPath := filepath.Join(dir, "test.sock")

	ln, err := net.Listen("unix", sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	received := make(chan Command, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		scanner := bufio.NewScanner(conn)
		if !scanner.Scan() {
			return
		}
		var cmd Command
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err == nil {
			received <- cmd
		}

		data, _ := json.Marshal(response)
		data = append(data, '\n')
		conn.Write(data)
	}()

	return sockPath, received, func() {
		ln.Close()
		os.Remove(sockPath)
	}
}

func TestClientSendCommand(t *testing.T) {
	resp := Response{OK: true, Status: "ready"}

	sockPath, received, cleanup := startMockDaemon(t, resp)
	defer cleanup()

	client, err := Connect(sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	got, err := client.SendCommand(Command{Cmd: CmdStatus})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if !got.OK {
		t.Error("ok = false, want true")
	}
	if got.Status != "ready" {
		t.Errorf("status = %q, want %q", got.Status, "ready")
	}
	if cmd := <-received; cmd.Cmd != CmdStatus {
		t.Errorf("cmd = %q, want %q", cmd.Cmd, CmdStatus)
	}
}

func TestClientSynthesizeRoundTripsAudio(t *testing.T) {
	audio := []byte{'R', 'I', 'F', 'F', 0x00, 0xff, 0x10}
	resp := Response{OK: true, Audio: audio, Format: "wav", SampleRate: 22050}

	sockPath, received, cleanup := startMockDaemon(t, resp)
	defer cleanup()

	client, err := Connect(sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	got, err := client.SendCommand(Command{
		Cmd:    CmdSynthesize,
		Text:   "Welcome to the atom.",
		Voice:  "nova",
		Speed:  Float64Ptr(1.25),
		Format: "wav",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if string(got.Audio) != string(audio) {
		t.Errorf("audio = %v, want %v", got.Audio, audio)
	}
	if got.SampleRate != 22050 {
		t.Errorf("sampleRate = %d, want %d", got.SampleRate, 22050)
	}

	cmd := <-received
	if cmd.Text != "Welcome to the atom." {
		t.Errorf("text = %q, want %q", cmd.Text, "Welcome to the atom.")
	}
	if cmd.Speed == nil || *cmd.Speed != 1.25 {
		t.Errorf("speed = %v, want 1.25", cmd.Speed)
	}
}

func TestClientConnectionClosed(t *testing.T) {
	dir := t.TempDir()
	sockPath := filepath.Join(dir, "test.sock")

	ln, err := net.Listen("unix", sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		bufio.NewReader(conn).ReadString('\n')
		conn.Close()
	}()

	client, err := Connect(sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	if _, err := client.SendCommand(Command{Cmd: CmdVoices}); err == nil {
		t.Error("expected error when daemon hangs up")
	}
}

func TestClientConnectFailure(t *testing.T) {
	_, err := Connect("/nonexistent/path/speechd.sock")
	if err == nil {
		t.Error("expected error connecting to nonexistent socket")
	}
}

func TestSocketPathUsesRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")

	want := filepath.Join("/run/user/1000", "holodeck", "speechd.sock")
	if got := SocketPath(); got != want {
		t.Errorf("SocketPath() = %q, want %q", got, want)
	}
}

func TestSocketPathFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	t.Setenv("HOME", "/home/learner")

	want := filepath.Join("/home/learner", ".holodeck", "speechd.sock")
	if got := SocketPath(); got != want {
		t.Errorf("SocketPath() = %q, want %q", got, want)
	}
}
