package handler

import (
	tele "gopkg.in/telebot.v3"
)

// fakeContext answers the calls the practice and import handlers make.
// Anything else panics on the nil embedded Context.
type fakeContext struct {
	tele.Context
	chat      *tele.Chat
	callback  *tele.Callback
	sent      []interface{}
	responses []*tele.CallbackResponse
}

func newMessageContext() *fakeContext {
	return &fakeContext{chat: &tele.Chat{ID: testChat}}
}

func newCallbackContext(unique string) *fakeContext {
	return &fakeContext{
		chat:     &tele.Chat{ID: testChat},
		callback: &tele.Callback{Unique: unique},
	}
}

func (f *fakeContext) Chat() *tele.Chat         { return f.chat }
func (f *fakeContext) Callback() *tele.Callback { return f.callback }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func (f *fakeContext) Edit(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		f.responses = append(f.responses, nil)
		return nil
	}
	f.responses = append(f.responses, resp...)
	return nil
}

// lastText returns the most recent message shown to the chat
func (f *fakeContext) lastText() string {
	if len(f.sent) == 0 {
		return ""
	}
	s, _ := f.sent[len(f.sent)-1].(string)
	return s
}

// lastResponse returns the text of the most recent callback answer
func (f *fakeContext) lastResponse() string {
	if len(f.responses) == 0 || f.responses[len(f.responses)-1] == nil {
		return ""
	}
	return f.responses[len(f.responses)-1].Text
}
