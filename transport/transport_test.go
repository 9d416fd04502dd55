package transport

import (
	"bytes"
	"testing"
	"time"
)

func TestDialListenLoopback(t *testing.T) {
	ln, err := Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	serverDone := make(chan []byte, 1)
	serverErr := make(chan error, 1)
	go func() {
		link, err := ln.Accept()
		if err != nil {
			serverErr <- err
			return
		}
		defer link.Close()

		buf := make([]byte, 5)
		if _, err := link.Read(buf); err != nil {
			serverErr <- err
			return
		}
		serverDone <- buf

		if _, err := link.Write([]byte("world")); err != nil {
			serverErr <- err
		}
	}()

	client, err := Dial(ln.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	if _, err := client.Write([]byte("hello")); err != nil {
		t.Fatalf("client Write: %v", err)
	}

	select {
	case got := <-serverDone:
		if !bytes.Equal(got, []byte("hello")) {
			t.Errorf("server received %q, want %q", got, "hello")
		}
	case err := <-serverErr:
		t.Fatalf("server error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server to receive data")
	}

	reply := make([]byte, 5)
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := client.Read(reply); err != nil {
		t.Fatalf("client Read: %v", err)
	}
	if !bytes.Equal(reply, []byte("world")) {
		t.Errorf("client received %q, want %q", reply, "world")
	}

	if client.LocalAddr() == nil || client.RemoteAddr() == nil {
		t.Errorf("expected non-nil LocalAddr/RemoteAddr on a connected Link")
	}
}

func TestListenerAddrMatchesBoundPort(t *testing.T) {
	ln, err := Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	if ln.Addr() == nil {
		t.Fatal("Addr() returned nil")
	}
}
