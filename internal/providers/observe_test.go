package providers

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	text string
	err  error
}

func (s stubProvider) Name() string { return "stub" }

func (s stubProvider) Generate(context.Context, string) (string, error) {
	return s.text, s.err
}

type recordingObserver struct {
	events []string
}

func (r *recordingObserver) PromptSent(p, prompt string) { r.events = append(r.events, "sent:"+prompt) }
func (r *recordingObserver) ResponseReceived(p, text string) {
	r.events = append(r.events, "recv:"+text)
}
func (r *recordingObserver) CallFailed(p string, err error) {
	r.events = append(r.events, "fail:"+err.Error())
}
func (r *recordingObserver) ProviderSkipped(string, error) {}

type panickingObserver struct{}

func (panickingObserver) PromptSent(string, string)       { panic("sink down") }
func (panickingObserver) ResponseReceived(string, string) { panic("sink down") }
func (panickingObserver) CallFailed(string, error)        { panic("sink down") }
func (panickingObserver) ProviderSkipped(string, error)   { panic("sink down") }

func TestObserve_ReportsVerbatim(t *testing.T) {
	obs := &recordingObserver{}
	p := Observe(stubProvider{text: "  raw {text}  "}, obs)

	got, err := p.Generate(context.Background(), "prompt\n")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "  raw {text}  " {
		t.Errorf("text mutated: %q", got)
	}
	want := []string{"sent:prompt\n", "recv:  raw {text}  "}
	if len(obs.events) != len(want) {
		t.Fatalf("events = %q, want %q", obs.events, want)
	}
	for i := range want {
		if obs.events[i] != want[i] {
			t.Errorf("event[%d] = %q, want %q", i, obs.events[i], want[i])
		}
	}
}

func TestObserve_Failure(t *testing.T) {
	obs := &recordingObserver{}
	boom := errors.New("boom")
	_, err := Observe(stubProvider{err: boom}, obs).Generate(context.Background(), "p")
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	if obs.events[len(obs.events)-1] != "fail:boom" {
		t.Errorf("last event = %q", obs.events[len(obs.events)-1])
	}
}

func TestObserve_PanickingObserverIgnored(t *testing.T) {
	p := Observe(stubProvider{text: "ok"}, panickingObserver{})
	got, err := p.Generate(context.Background(), "p")
	if err != nil || got != "ok" {
		t.Errorf("Generate = %q, %v; want ok, nil", got, err)
	}

	_, err = Observe(stubProvider{err: errors.New("x")}, panickingObserver{}).Generate(context.Background(), "p")
	if err == nil || err.Error() != "x" {
		t.Errorf("error = %v, want x", err)
	}
}

func TestObserve_NilObserver(t *testing.T) {
	s := stubProvider{text: "ok"}
	if Observe(s, nil) != Provider(s) {
		t.Error("Observe with nil observer should return the provider unchanged")
	}
}
