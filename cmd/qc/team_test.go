package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quikcommit/qc/internal/api"
	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/output"
)

const teamReply = `{
	"id": "t1", "name": "Acme", "plan": "team", "member_count": 2,
	"members": [
		{"id": "u1", "email": "ada@acme.dev", "name": "Ada", "role": "owner"},
		{"id": "u2", "email": "bob@acme.dev", "name": null, "role": "member"}
	]
}`

func TestTeam_Info(t *testing.T) {
	isolateConfig(t)
	t.Setenv("QC_API_KEY", "qc_test_key")
	newFakeService(t, map[string]string{"/v1/team": teamReply})

	for _, args := range [][]string{{"team"}, {"team", "info"}} {
		stdout, _, err := execute(t, "", args...)
		if err != nil {
			t.Fatalf("%v failed: %v", args, err)
		}
		for _, want := range []string{"Team: Acme", "Plan: team", "Members: 2", "Ada", "<ada@acme.dev>", "owner", "bob@acme.dev"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("%v stdout should contain %q: %q", args, want, stdout)
			}
		}
	}
}

func TestTeam_InfoJSON(t *testing.T) {
	isolateConfig(t)
	newFakeService(t, map[string]string{"/v1/team": teamReply})

	stdout, _, err := execute(t, "", "team", "--api-key", "qc_flag_key", "--json")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	var got api.Team
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("failed to parse JSON: %v\nOutput: %s", err, stdout)
	}
	if got.Name != "Acme" || len(got.Members) != 2 {
		t.Errorf("team = %+v", got)
	}
}

func TestTeam_NotAuthenticated(t *testing.T) {
	isolateConfig(t)
	newFakeService(t, map[string]string{"/v1/team": teamReply})

	_, stderr, err := execute(t, "", "team")
	if got := output.GetExitCode(err); got != output.ExitUserError {
		t.Errorf("exit code = %d, want %d (err %v)", got, output.ExitUserError, err)
	}
	if !strings.Contains(stderr, "Not authenticated. Run `qc login` first.") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestTeam_Rules(t *testing.T) {
	isolateConfig(t)
	t.Setenv("QC_API_KEY", "qc_test_key")
	newFakeService(t, map[string]string{"/v1/team/rules": `{"types": ["feat", "fix"], "headerMaxLength": 72}`})

	stdout, _, err := execute(t, "", "team", "rules")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	header, body, ok := strings.Cut(stdout, "\n")
	if !ok || header != "Team Commit Rules:" {
		t.Fatalf("stdout = %q", stdout)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("rules are not JSON: %v\n%s", err, body)
	}
	want := map[string]any{"types": []any{"feat", "fix"}, "headerMaxLength": float64(72)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestTeam_RulesPushFromCommitlint(t *testing.T) {
	isolateConfig(t)
	t.Setenv("QC_API_KEY", "qc_test_key")
	service := newFakeService(t, map[string]string{"/v1/team/rules": `{}`})
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		".commitlintrc.json": `{"rules": {"type-enum": [2, "always", ["feat", "fix"]], "scope-enum": [2, "always", ["cli"]]}}`,
	})

	runInDir(t, dir, func() {
		stdout, _, err := execute(t, "", "team", "rules", "push")
		if err != nil {
			t.Fatalf("command failed: %v", err)
		}
		if stdout != "Team rules updated from local commitlint config.\n" {
			t.Errorf("stdout = %q", stdout)
		}
	})

	want := map[string]any{"types": []any{"feat", "fix"}, "scopes": []any{"cli"}}
	if diff := cmp.Diff(want, service.request("/v1/team/rules")); diff != "" {
		t.Errorf("pushed rules mismatch (-want +got):\n%s", diff)
	}
}

func TestTeam_RulesPushFallsBackToConfig(t *testing.T) {
	configDir := isolateConfig(t)
	t.Setenv("QC_API_KEY", "qc_test_key")
	service := newFakeService(t, map[string]string{"/v1/team/rules": `{}`})
	writeFiles(t, configDir, map[string]string{config.FileName: "rules:\n  scopes: [cli, core]\n"})
	runInDir(t, t.TempDir(), func() {
		if _, _, err := execute(t, "", "team", "rules", "push"); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if diff := cmp.Diff([]any{"cli", "core"}, service.request("/v1/team/rules")["scopes"]); diff != "" {
		t.Errorf("pushed scopes mismatch (-want +got):\n%s", diff)
	}
}

func TestTeam_RulesPushWithoutConfig(t *testing.T) {
	isolateConfig(t)
	t.Setenv("QC_API_KEY", "qc_test_key")
	service := newFakeService(t, map[string]string{"/v1/team/rules": `{}`})

	runInDir(t, t.TempDir(), func() {
		_, stderr, err := execute(t, "", "team", "rules", "push")
		if got := output.GetExitCode(err); got != output.ExitUserError {
			t.Errorf("exit code = %d, want %d", got, output.ExitUserError)
		}
		if !strings.Contains(stderr, "No local commitlint config found.") {
			t.Errorf("stderr = %q", stderr)
		}
	})
	if service.called("/v1/team/rules") {
		t.Error("nothing should be pushed without rules")
	}
}

func TestTeam_Invite(t *testing.T) {
	isolateConfig(t)
	t.Setenv("QC_API_KEY", "qc_test_key")
	service := newFakeService(t, map[string]string{"/v1/team/invite": `{"ok": true}`})

	stdout, _, err := execute(t, "", "team", "invite", "cy@acme.dev")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if stdout != "Invitation sent to cy@acme.dev\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if got := service.request("/v1/team/invite")["email"]; got != "cy@acme.dev" {
		t.Errorf("email = %v", got)
	}
}

func TestTeam_InviteRequiresEmail(t *testing.T) {
	isolateConfig(t)
	service := newFakeService(t, map[string]string{"/v1/team/invite": `{}`})

	_, _, err := execute(t, "", "team", "invite")
	if err == nil || !strings.Contains(err.Error(), "Usage: qc team invite <email>") {
		t.Errorf("err = %v", err)
	}
	if service.called("/v1/team/invite") {
		t.Error("no invitation should be sent")
	}
}

func TestTeam_ServiceError(t *testing.T) {
	isolateConfig(t)
	t.Setenv("QC_API_KEY", "qc_test_key")
	service := newFakeService(t, map[string]string{"/v1/team": `{"error": "Not a team member"}`})
	service.statuses["/v1/team"] = 403

	_, stderr, err := execute(t, "", "team")
	if got := output.GetExitCode(err); got != output.ExitRemoteError {
		t.Errorf("exit code = %d, want %d", got, output.ExitRemoteError)
	}
	if !strings.Contains(stderr, "Not a team member") {
		t.Errorf("stderr = %q", stderr)
	}
}
