package monitor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"partflow/internal/domain"
	"partflow/mocks"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestEligible(t *testing.T) {
	dir := t.TempDir()
	m := New(nil, Config{InputDir: dir, MinFileSize: 1024})

	assert.True(t, m.eligible(writeFile(t, dir, "J1234567.psd", 2048)))
	assert.True(t, m.eligible(writeFile(t, dir, "part.JPG", 2048)))

	assert.False(t, m.eligible(writeFile(t, dir, ".hidden.psd", 2048)), "dotfiles are copy temp files")
	assert.False(t, m.eligible(writeFile(t, dir, "readme.txt", 2048)), "extension not allowed")
	assert.False(t, m.eligible(writeFile(t, dir, "tiny.psd", 10)), "below minimum size")
	assert.False(t, m.eligible(filepath.Join(dir, "missing.psd")))

	sub := filepath.Join(dir, "nested.psd")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	assert.False(t, m.eligible(sub), "directories are never registered")
}

func TestScan_RegistersEligibleFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "J1234567.psd", 2048)
	writeFile(t, dir, "notes.txt", 2048)
	writeFile(t, dir, ".partial.psd", 2048)

	files := new(mocks.MockFileService)
	files.On("Register", mock.Anything, good).Return(&domain.ImageFile{
		ID:       uuid.New(),
		Filename: "J1234567.psd",
	}, nil).Once()

	m := New(files, Config{InputDir: dir, MinFileSize: 1024})
	m.scan(context.Background())

	files.AssertExpectations(t)
	files.AssertNumberOfCalls(t, "Register", 1)
}

func TestScan_DuplicateSilentlySkipped(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "seen.psd", 2048)

	files := new(mocks.MockFileService)
	files.On("Register", mock.Anything, path).Return(nil, domain.ErrDuplicateFile)

	m := New(files, Config{InputDir: dir, MinFileSize: 1024})
	m.scan(context.Background())

	files.AssertExpectations(t)
}

func TestSettle_WaitsForStableSize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "growing.psd", 2048)

	files := new(mocks.MockFileService)
	files.On("Register", mock.Anything, path).Return(&domain.ImageFile{
		ID:       uuid.New(),
		Filename: "growing.psd",
	}, nil).Once()

	m := New(files, Config{InputDir: dir, MinFileSize: 1024, SettleDelay: 10 * time.Millisecond})
	m.settle(context.Background(), path)

	files.AssertExpectations(t)
}

func TestSettle_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.psd", 2048)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := new(mocks.MockFileService)
	m := New(files, Config{InputDir: dir, MinFileSize: 1024, SettleDelay: 10 * time.Millisecond})
	m.settle(ctx, path)

	files.AssertNumberOfCalls(t, "Register", 0)
}
