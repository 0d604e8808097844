package usecase

import (
	"context"
	"errors"

	"github.com/greenloop/ecoai-commerce/internal/core/ports"
)

type completerFake struct {
	response string
	err      error
	lastReq  ports.CompletionRequest
	calls    int
}

func (f *completerFake) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type storeInsert struct {
	collection string
	doc        any
}

type storeFake struct {
	inserts []storeInsert
	failOn  string
	pingErr error
}

func (f *storeFake) InsertOne(_ context.Context, collection string, doc any) error {
	if f.failOn != "" && f.failOn == collection {
		return errors.New("write refused")
	}
	f.inserts = append(f.inserts, storeInsert{collection: collection, doc: doc})
	return nil
}

func (f *storeFake) Ping(context.Context) error { return f.pingErr }

func (f *storeFake) collections() []string {
	out := make([]string, 0, len(f.inserts))
	for _, ins := range f.inserts {
		out = append(out, ins.collection)
	}
	return out
}
