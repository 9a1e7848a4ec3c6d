// Package dispatch maps operation names to git façade methods, giving a
// remote transport a single JSON entry point. The transport itself (HTTP,
// RPC, a CLI) stays outside this package; it only needs Invoke.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"gitbridge.dev/gitbridge/internal/git"
)

// Wire sentinels accepted for comparison endpoints. They are converted to
// tagged endpoint variants at this boundary; the core never sees them.
const (
	refWorking = "WORKING"
	refIndex   = "INDEX"
)

// Dispatcher routes operation invocations to a git façade.
type Dispatcher struct {
	git *git.Git
}

// New creates a Dispatcher around the given façade.
func New(g *git.Git) *Dispatcher {
	return &Dispatcher{git: g}
}

// request is the superset of arguments accepted across operations; each
// operation reads the fields it needs.
type request struct {
	Path         string            `json:"path"`
	Count        int               `json:"count"`
	CommitID     string            `json:"commitId"`
	Files        []string          `json:"files"`
	File         string            `json:"file"`
	Filename     string            `json:"filename"`
	Message      string            `json:"message"`
	Branch       string            `json:"branch"`
	Name         string            `json:"name"`
	Remote       string            `json:"remote"`
	URL          string            `json:"url"`
	Ref          string            `json:"ref"`
	SHA          string            `json:"sha"`
	Base         string            `json:"base"`
	RemoteRef    string            `json:"remoteRef"`
	SingleCommit string            `json:"singleCommit"`
	PrevRef      string            `json:"prevRef"`
	CurrRef      string            `json:"currRef"`
	Options      map[string]string `json:"options"`
	Auth         *authPayload      `json:"auth"`
}

type authPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *authPayload) credentials() *git.Credentials {
	if a == nil {
		return nil
	}
	return &git.Credentials{Username: a.Username, Password: a.Password}
}

// errorEnvelope matches the universal result shape for dispatch-level
// failures (unknown operation, malformed arguments).
type errorEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Invoke runs the named operation with JSON-encoded arguments and returns a
// JSON result envelope. Invoke itself never fails: unknown operations and
// malformed arguments come back as client-error envelopes.
func (d *Dispatcher) Invoke(ctx context.Context, operation string, args json.RawMessage) json.RawMessage {
	var req request
	if len(args) > 0 {
		if err := json.Unmarshal(args, &req); err != nil {
			return marshal(errorEnvelope{Code: 400, Message: fmt.Sprintf("malformed arguments: %v", err)})
		}
	}

	switch operation {
	case "config":
		return marshal(d.git.Config(ctx, req.Path, req.Options))
	case "status":
		return marshal(d.git.Status(ctx, req.Path))
	case "log":
		return marshal(d.git.Log(ctx, req.Path, req.Count))
	case "detailedLog":
		return marshal(d.git.DetailedLog(ctx, req.CommitID, req.Path))
	case "diff":
		return marshal(d.git.Diff(ctx, req.Path))
	case "branch":
		return marshal(d.git.Branch(ctx, req.Path))
	case "currentBranch":
		name, err := d.git.CurrentBranch(ctx, req.Path)
		if err != nil {
			return marshal(errorEnvelope{Code: -1, Message: err.Error()})
		}
		return marshal(struct {
			Code int    `json:"code"`
			Name string `json:"name"`
		}{Name: name})
	case "changedFiles":
		base, remote := endpoint(req.Base), endpoint(req.RemoteRef)
		return marshal(d.git.ChangedFiles(ctx, base, remote, req.SingleCommit))
	case "clone":
		return marshal(d.git.Clone(ctx, req.Path, req.URL, req.Auth.credentials()))
	case "pull":
		return marshal(d.git.Pull(ctx, req.Path, req.Auth.credentials()))
	case "push":
		return marshal(d.git.Push(ctx, req.Remote, req.Branch, req.Path, req.Auth.credentials()))
	case "add":
		return marshal(d.git.Add(ctx, req.Path, req.Files...))
	case "addAll":
		return marshal(d.git.AddAll(ctx, req.Path))
	case "addAllUnstaged":
		return marshal(d.git.AddAllUnstaged(ctx, req.Path))
	case "addAllUntracked":
		return marshal(d.git.AddAllUntracked(ctx, req.Path))
	case "reset":
		return marshal(d.git.Reset(ctx, req.Path, req.File))
	case "resetAll":
		return marshal(d.git.ResetAll(ctx, req.Path))
	case "checkout":
		return marshal(d.git.CheckoutFile(ctx, req.Path, req.File))
	case "checkoutAll":
		return marshal(d.git.CheckoutAll(ctx, req.Path))
	case "checkoutNewBranch":
		return marshal(d.git.CheckoutNewBranch(ctx, req.Path, req.Name))
	case "checkoutBranch":
		return marshal(d.git.CheckoutBranch(ctx, req.Path, req.Name))
	case "commit":
		return marshal(d.git.Commit(ctx, req.Path, req.Message))
	case "init":
		return marshal(d.git.Init(ctx, req.Path))
	case "deleteCommit":
		return marshal(d.git.DeleteCommit(ctx, req.Path, req.CommitID))
	case "resetToCommit":
		return marshal(d.git.ResetToCommit(ctx, req.Path, req.CommitID))
	case "show":
		return marshal(d.git.ShowFile(ctx, req.Path, req.Filename, req.Ref))
	case "showTopLevel":
		return marshal(d.git.ShowTopLevel(ctx, req.Path))
	case "showPrefix":
		return marshal(d.git.ShowPrefix(ctx, req.Path))
	case "upstream":
		return marshal(d.git.Upstream(ctx, req.Path, req.Branch))
	case "tag":
		return marshal(d.git.Tag(ctx, req.Path, req.SHA))
	case "diffContent":
		prev, curr := endpoint(req.PrevRef), endpoint(req.CurrRef)
		if prev == nil || curr == nil {
			return marshal(errorEnvelope{Code: 400, Message: "prevRef and currRef are required"})
		}
		return marshal(d.git.DiffContent(ctx, req.Path, req.Filename, *prev, *curr))
	default:
		return marshal(errorEnvelope{Code: 400, Message: fmt.Sprintf("unknown operation %q", operation)})
	}
}

// endpoint converts a wire ref string into a tagged endpoint: the reserved
// names map to the working-tree and index variants, anything else is a
// committed ref, and absence stays absent.
func endpoint(ref string) *git.Endpoint {
	if ref == "" {
		return nil
	}
	var e git.Endpoint
	switch ref {
	case refWorking:
		e = git.WorkingTree()
	case refIndex:
		e = git.Index()
	default:
		e = git.CommittedRef(ref)
	}
	return &e
}

func marshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{"code":-1,"message":"failed to encode result"}`)
	}
	return data
}
