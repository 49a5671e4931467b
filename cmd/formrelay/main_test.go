package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formrelay/pkg/payload"
	"github.com/goliatone/go-formrelay/pkg/renderers/tui"
	"github.com/goliatone/go-formrelay/pkg/submission"
	"github.com/goliatone/go-formrelay/pkg/webhook"
)

type scriptedDriver struct {
	inputs []string
	pos    int
	infos  []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if d.pos >= len(d.inputs) {
		return "", errors.New("no input scripted")
	}
	v := d.inputs[d.pos]
	d.pos++
	return v, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return -1, errors.New("no select scripted")
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, errors.New("no multiselect scripted")
}

func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", errors.New("no textarea scripted")
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

type capturePoster struct {
	bodies []any
	err    error
}

func (p *capturePoster) Post(_ context.Context, body any) (webhook.Response, error) {
	p.bodies = append(p.bodies, body)
	if p.err != nil {
		return webhook.Response{}, p.err
	}
	return webhook.Response{StatusCode: http.StatusOK, Body: map[string]any{}}, nil
}

func run(t *testing.T, cli *cliRoot, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderDesignToStdout(t *testing.T) {
	out, err := run(t, newRoot(), "render", "design", "--user-id", "U7")
	require.NoError(t, err)

	assert.Contains(t, out, `id="projectForm"`)
	assert.Contains(t, out, `value="U7"`)
	assert.Contains(t, out, `action="/design?userId=U7"`)
}

func TestRenderRegisterToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "register.html")

	out, err := run(t, newRoot(), "render", "register", "--output", path, "--locale", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "Form written to")

	page, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Registration")
	assert.Contains(t, string(page), `lang="en"`)
}

func TestRenderUnknownForm(t *testing.T) {
	_, err := run(t, newRoot(), "render", "survey")
	require.Error(t, err)
}

func TestSubmitRegistration(t *testing.T) {
	poster := &capturePoster{}
	driver := &scriptedDriver{inputs: []string{"王小明", "Ming", "IT", "ming", "0912345678", "123"}}
	cli := newRoot()
	cli.driver = driver
	cli.poster = func(string) (submission.Poster, error) { return poster, nil }

	out, err := run(t, cli, "submit", "register", "--user-id", "U5")
	require.NoError(t, err)

	assert.Contains(t, out, "註冊成功！您現在可以使用所有功能。")
	assert.Contains(t, out, "Continue at https://line.me/R/")

	require.Len(t, poster.bodies, 1)
	body := poster.bodies[0].(payload.Registration)
	assert.Equal(t, "U5", body.LineID)
	// extension mask adds the leading #
	assert.Equal(t, "#123", body.Extension)
}

func TestSubmitRetriesAfterValidationFailure(t *testing.T) {
	poster := &capturePoster{}
	driver := &scriptedDriver{inputs: []string{
		"王小明", "Ming", "IT", "ming", "0912345678", "12",
		"王小明", "Ming", "IT", "ming", "0912345678", "1234",
	}}
	cli := newRoot()
	cli.driver = driver
	cli.poster = func(string) (submission.Poster, error) { return poster, nil }

	_, err := run(t, cli, "submit", "register")
	require.NoError(t, err)

	require.Len(t, poster.bodies, 1)
	assert.Equal(t, "#1234", poster.bodies[0].(payload.Registration).Extension)
	require.NotEmpty(t, driver.infos)
	assert.True(t, strings.Contains(strings.Join(driver.infos, "\n"), "分機號碼格式不正確"))
}

func TestSubmitTransportFailure(t *testing.T) {
	poster := &capturePoster{err: &webhook.TransportError{StatusCode: http.StatusBadRequest, Message: "duplicate line id"}}
	cli := newRoot()
	cli.driver = &scriptedDriver{inputs: []string{"王小明", "Ming", "IT", "ming", "0912345678", "#123"}}
	cli.poster = func(string) (submission.Poster, error) { return poster, nil }

	_, err := run(t, cli, "submit", "register")
	require.Error(t, err)
	assert.Equal(t, "註冊失敗: HTTP 錯誤! 狀態: 400, 訊息: duplicate line id", err.Error())
}

func TestServeBuildsServer(t *testing.T) {
	cli := newRoot()
	cmd := cli.NewCommand()
	require.NoError(t, cli.setup(cmd))

	srv, err := cli.server()
	require.NoError(t, err)
	require.NotNil(t, srv.Handler())
}
