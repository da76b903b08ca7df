package zeppelin_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/codahale/gubbins/assert"

	"github.com/lostinentropy/zeppelin-core"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	plaintext := []byte("one two three four I declare a thumb war")
	ciphertext := &bytes.Buffer{}

	wrappedSalt, doc, err := zeppelin.Encrypt(context.Background(), []byte("hunter2"), bytes.NewReader(plaintext), ciphertext, zeppelin.TestingSettings(), nil)
	if err != nil {
		t.Fatal(err)
	}

	recovered := &bytes.Buffer{}

	err = zeppelin.Decrypt(context.Background(), []byte("hunter2"), wrappedSalt, doc, bytes.NewReader(ciphertext.Bytes()), recovered, nil)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "recovered plaintext", plaintext, recovered.Bytes())
}

func TestDecryptWrongPasswordFails(t *testing.T) {
	t.Parallel()

	plaintext := []byte("attack at dawn")
	ciphertext := &bytes.Buffer{}

	wrappedSalt, doc, err := zeppelin.Encrypt(context.Background(), []byte("correct horse"), bytes.NewReader(plaintext), ciphertext, zeppelin.TestingSettings(), nil)
	if err != nil {
		t.Fatal(err)
	}

	err = zeppelin.Decrypt(context.Background(), []byte("wrong password"), wrappedSalt, doc, bytes.NewReader(ciphertext.Bytes()), &bytes.Buffer{}, nil)
	if err != zeppelin.ErrAuthenticationFailed {
		t.Fatalf("Decrypt() = %v, want ErrAuthenticationFailed", err)
	}
}

func TestDecryptTruncatedCiphertextFails(t *testing.T) {
	t.Parallel()

	plaintext := bytes.Repeat([]byte("all or nothing "), 10)
	ciphertext := &bytes.Buffer{}

	wrappedSalt, doc, err := zeppelin.Encrypt(context.Background(), []byte("hunter2"), bytes.NewReader(plaintext), ciphertext, zeppelin.TestingSettings(), nil)
	if err != nil {
		t.Fatal(err)
	}

	truncated := ciphertext.Bytes()[:ciphertext.Len()-1]

	err = zeppelin.Decrypt(context.Background(), []byte("hunter2"), wrappedSalt, doc, bytes.NewReader(truncated), &bytes.Buffer{}, nil)
	if err != zeppelin.ErrAuthenticationFailed {
		t.Fatalf("Decrypt() = %v, want ErrAuthenticationFailed", err)
	}
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	t.Parallel()

	plaintext := bytes.Repeat([]byte("tamper evident "), 5)
	ciphertext := &bytes.Buffer{}

	wrappedSalt, doc, err := zeppelin.Encrypt(context.Background(), []byte("hunter2"), bytes.NewReader(plaintext), ciphertext, zeppelin.TestingSettings(), nil)
	if err != nil {
		t.Fatal(err)
	}

	tampered := append([]byte(nil), ciphertext.Bytes()...)
	tampered[len(tampered)-1] ^= 0xFF

	err = zeppelin.Decrypt(context.Background(), []byte("hunter2"), wrappedSalt, doc, bytes.NewReader(tampered), &bytes.Buffer{}, nil)
	if err != zeppelin.ErrAuthenticationFailed {
		t.Fatalf("Decrypt() = %v, want ErrAuthenticationFailed", err)
	}
}

func TestEncryptRejectsInvalidParams(t *testing.T) {
	t.Parallel()

	bad := zeppelin.CryptSettings{}

	_, _, err := zeppelin.Encrypt(context.Background(), []byte("x"), bytes.NewReader(nil), &bytes.Buffer{}, bad, nil)
	if err == nil {
		t.Fatal("expected an error for invalid params")
	}
}

func TestEncryptRespectsCancellation(t *testing.T) {
	t.Parallel()

	plaintext := bytes.Repeat([]byte("cancel me "), 10000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := zeppelin.Encrypt(ctx, []byte("hunter2"), bytes.NewReader(plaintext), &bytes.Buffer{}, zeppelin.TestingSettings(), nil)
	if err != zeppelin.ErrCancelled {
		t.Fatalf("Encrypt() = %v, want ErrCancelled", err)
	}
}
