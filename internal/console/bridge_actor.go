// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package console

import (
	"fmt"

	"ergo.services/ergo/act"
	"ergo.services/ergo/gen"
)

// ConsoleBridge bridges the non-actor world (the HTTP API and the CLI
// entrypoints) with the actor world by providing synchronous call semantics
// to non-actor code.
type ConsoleBridge struct {
	act.Actor
}

func NewConsoleBridge() gen.ProcessBehavior {
	return &ConsoleBridge{}
}

// CallActorRequest is a message sent to the bridge to make a synchronous
// call to another actor.
type CallActorRequest struct {
	Target      gen.ProcessID
	Message     any
	SuccessChan chan any
	ErrorChan   chan error
}

func (b *ConsoleBridge) Init(args ...any) error {
	b.Log().Debug("ConsoleBridge initialized")
	return nil
}

func (b *ConsoleBridge) HandleMessage(from gen.PID, message any) error {
	switch msg := message.(type) {
	case CallActorRequest:
		response, err := b.CallWithTimeout(msg.Target, msg.Message, 10)

		if err != nil {
			select {
			case msg.ErrorChan <- err:
			default:
				b.Log().Error("failed to send error response to channel", "error", err)
			}
		} else {
			select {
			case msg.SuccessChan <- response:
			default:
				b.Log().Error("failed to send success response to channel")
			}
		}

		return nil

	default:
		return fmt.Errorf("ConsoleBridge received unknown message type %T", message)
	}
}
