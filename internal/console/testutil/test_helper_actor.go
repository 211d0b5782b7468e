// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package testutil

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"ergo.services/ergo/act"
	"ergo.services/ergo/gen"
)

// TestHelperActor is an auxiliary actor for making synchronous calls from
// tests into the actor world. Messages it does not understand are forwarded
// to the test's channel.
type TestHelperActor struct {
	act.Actor
	messages chan<- any
}

func newTestHelper() gen.ProcessBehavior {
	return &TestHelperActor{}
}

type testCall struct {
	Request  any
	Target   gen.Atom
	Response chan<- any
	Errors   chan<- error
}

func (a *TestHelperActor) Init(args ...any) error {
	if len(args) > 0 {
		messages, ok := args[0].(chan<- any)
		if !ok {
			return fmt.Errorf("testHelperActor expected a chan<- any as the first argument")
		}
		a.messages = messages
	}

	return nil
}

func (a *TestHelperActor) HandleMessage(from gen.PID, message any) error {
	switch msg := message.(type) {
	case testCall:
		target := gen.ProcessID{Name: msg.Target, Node: a.Node().Name()}
		res, err := a.CallWithTimeout(target, msg.Request, 5)
		if err != nil {
			msg.Errors <- err
			return nil
		}
		msg.Response <- res
		return nil

	default:
		if a.messages != nil {
			a.messages <- message
		}
		return nil
	}
}

func StartTestHelperActor(node gen.Node, messages chan<- any) (gen.PID, error) {
	pid, err := node.SpawnRegister("TestHelperActor", newTestHelper, gen.ProcessOptions{}, messages)
	if err != nil {
		return gen.PID{}, fmt.Errorf("failed to spawn TestHelperActor: %w", err)
	}

	return pid, nil
}

// Call makes a synchronous call to a named process through the helper actor.
func Call(node gen.Node, target gen.Atom, request any) (any, error) {
	res := make(chan any, 1)
	errs := make(chan error, 1)

	err := node.Send(
		gen.ProcessID{Name: "TestHelperActor", Node: node.Name()},
		testCall{Request: request, Target: target, Response: res, Errors: errs},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send call to TestHelperActor: %w", err)
	}

	select {
	case r := <-res:
		return r, nil
	case e := <-errs:
		return nil, e
	case <-time.After(10 * time.Second):
		return nil, fmt.Errorf("timed out calling %s", target)
	}
}

// ExpectMessage waits for a message of type T on ch that satisfies the
// predicate, failing the test on a wrong type or timeout.
func ExpectMessage[T any](t *testing.T, ch <-chan any, timeout time.Duration, predicate func(T) bool) T {
	t.Helper()

	var zero T

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-ch:
		typed, ok := msg.(T)
		if !ok {
			t.Fatalf("received message of type %T, expected %s", msg, reflect.TypeOf(zero).String())
			return zero
		}
		if !predicate(typed) {
			t.Fatalf("message %+v did not satisfy the predicate", typed)
			return zero
		}
		return typed

	case <-timer.C:
		t.Fatalf("timed out after %v waiting for a %s", timeout, reflect.TypeOf(zero).String())
		return zero
	}
}
