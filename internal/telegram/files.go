package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	tele "gopkg.in/telebot.v3"
)

// FileLocator resolves a file ID to its path on Telegram servers
type FileLocator interface {
	FileByID(fileID string) (tele.File, error)
}

// FileFetcher downloads files users sent to the bot
type FileFetcher struct {
	locator FileLocator
	client  *resty.Client
	baseURL string
	token   string
}

// NewFileFetcher creates a fetcher for the bot's files with a per-download timeout
func NewFileFetcher(bot *tele.Bot, timeout time.Duration) *FileFetcher {
	return newFileFetcher(bot, bot.URL, bot.Token, timeout)
}

func newFileFetcher(locator FileLocator, baseURL, token string, timeout time.Duration) *FileFetcher {
	return &FileFetcher{
		locator: locator,
		client:  resty.New().SetTimeout(timeout),
		baseURL: baseURL,
		token:   token,
	}
}

// Fetch saves the file identified by fileID to dst
func (f *FileFetcher) Fetch(ctx context.Context, fileID, dst string) error {
	file, err := f.locator.FileByID(fileID)
	if err != nil {
		return fmt.Errorf("get file %s: %w", fileID, f.redact(err))
	}
	if file.FilePath == "" {
		return fmt.Errorf("get file %s: no file path", fileID)
	}

	fileURL := fmt.Sprintf("%s/file/bot%s/%s", f.baseURL, f.token, file.FilePath)

	resp, err := f.client.R().
		SetContext(ctx).
		SetOutput(dst).
		Get(fileURL)
	if err != nil {
		return fmt.Errorf("download file %s: %w", fileID, f.redact(err))
	}
	if resp.IsError() {
		return fmt.Errorf("download file %s: unexpected status %d", fileID, resp.StatusCode())
	}

	return nil
}

// redact drops the request URL from err. Bot API URLs carry the bot token.
func (f *FileFetcher) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	if f.token != "" && strings.Contains(err.Error(), f.token) {
		return errors.New(strings.ReplaceAll(err.Error(), f.token, "<token>"))
	}
	return err
}
