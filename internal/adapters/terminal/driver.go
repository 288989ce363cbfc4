package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted - пользователь прервал ввод (Ctrl+C)
var ErrAborted = errors.New("terminal: aborted")

type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

type ConfirmConfig struct {
	Message string
	Default bool
}

type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	PageSize     int
}

// PromptDriver - интерактивный ввод. В тестах подменяется сценарием.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	// Select возвращает индекс выбранного варианта в cfg.Options
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
}

// SurveyDriver читает ответы из терминала через survey
type SurveyDriver struct {
	out io.Writer
}

func NewSurveyDriver(out io.Writer) *SurveyDriver {
	return &SurveyDriver{out: out}
}

func (d *SurveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var answer string
	prompt := &survey.Input{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}

	var opts []survey.AskOpt
	if cfg.Validator != nil {
		validator := cfg.Validator
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validator(s)
		}))
	}
	if err := survey.AskOne(prompt, &answer, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return answer, nil
}

func (d *SurveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var answer bool
	prompt := &survey.Confirm{Message: cfg.Message, Default: cfg.Default}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, translateSurveyErr(err)
	}
	return answer, nil
}

func (d *SurveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	if len(cfg.Options) == 0 {
		return -1, errors.New("terminal: select without options")
	}
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex > 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}

	// survey пишет индекс варианта, если ответ - int
	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		return -1, translateSurveyErr(err)
	}
	return index, nil
}

func (d *SurveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	if errors.Is(err, io.EOF) {
		return ErrAborted
	}
	return err
}
