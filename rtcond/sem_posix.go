//go:build cgo && (linux || darwin)

// File: rtcond/sem_posix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package rtcond

/*
#include <semaphore.h>
#include <fcntl.h>
#include <errno.h>
#include <string.h>
#include <stdlib.h>

static sem_t *rtcond_sem_create(const char *name, int *err_errno) {
	sem_t *s = sem_open(name, O_CREAT | O_EXCL, 0600, 0);
	if (s == SEM_FAILED) {
		*err_errno = errno;
		return NULL;
	}
	return s;
}

static int rtcond_sem_wait(sem_t *s) {
	int rc;
	do {
		rc = sem_wait(s);
	} while (rc != 0 && errno == EINTR);
	return rc;
}

static int rtcond_sem_post(sem_t *s) {
	return sem_post(s);
}
*/
import "C"

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/momentics/rtworker/rtwerr"
)

// supportsNamedSemaphores is true wherever the platform exposes POSIX
// named semaphores through cgo (linux, darwin).
const supportsNamedSemaphores = true

// semCondVar implements CondVar on top of a POSIX named semaphore. Notify
// posts, Wait waits-one. Close posts once to release a blocked waiter and
// unlinks the name so no other process can attach to it afterward.
type semCondVar struct {
	sem    *C.sem_t
	name   string
	closed atomic.Bool
}

// newSemCondVar creates a fresh named semaphore under a randomized name,
// retrying on collision up to a fixed budget.
func newSemCondVar() (CondVar, error) {
	const maxAttempts = 100
	for attempt := 0; attempt < maxAttempts; attempt++ {
		name, err := randomSemName()
		if err != nil {
			return nil, err
		}
		cName := C.CString(name)
		var errnoOut C.int
		sem := C.rtcond_sem_create(cName, &errnoOut)
		C.free(unsafe.Pointer(cName))
		if sem != nil {
			return &semCondVar{sem: sem, name: name}, nil
		}
		if errnoOut == C.EEXIST {
			continue
		}
		return nil, fmt.Errorf("rtcond: sem_open: errno %d: %w", int(errnoOut), rtwerr.ErrOSFailure)
	}
	return nil, fmt.Errorf("rtcond: exhausted %d naming attempts: %w", maxAttempts, rtwerr.ErrRuntimeError)
}

func randomSemName() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("rtcond: %w: %v", rtwerr.ErrOSFailure, err)
	}
	return "/rtworker-" + hex.EncodeToString(buf[:]), nil
}

func (c *semCondVar) Notify() {
	C.rtcond_sem_post(c.sem)
}

func (c *semCondVar) Wait() bool {
	C.rtcond_sem_wait(c.sem)
	return !c.closed.Load()
}

func (c *semCondVar) Close() error {
	c.closed.Store(true)
	C.rtcond_sem_post(c.sem)
	cName := C.CString(c.name)
	C.sem_unlink(cName)
	C.free(unsafe.Pointer(cName))
	return nil
}
