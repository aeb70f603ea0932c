// Package mocks provides generated mock implementations for testing the
// portal's session and authentication ports.
//
// The mocks are generated with go.uber.org/mock (gomock). To regenerate
// after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockSessionStore(ctrl)
//	store.EXPECT().Get(gomock.Any(), "sid").Return(rec, nil)
package mocks

// Generate mock for the SessionStore interface.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/learnix/learnix-portal/internal/ports SessionStore

// Generate mock for the Authenticator interface.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=authenticator_mock.go github.com/learnix/learnix-portal/internal/ports Authenticator

// Generate mock for the TokenDecoder interface.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=token_decoder_mock.go github.com/learnix/learnix-portal/internal/ports TokenDecoder
