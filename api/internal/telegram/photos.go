package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"screen-solve/api/internal/solve"
	"screen-solve/api/internal/util"
)

// Bot API downloads are capped at 20 MB.
const maxDownload = 20 << 20

func (r *Router) acceptImage(ctx context.Context, cid int64, fileID string) {
	file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		r.log.Error("get file", "chat_id", cid, "error", err)
		r.send(cid, "Could not fetch the file from Telegram, please resend it.")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	img, err := r.download(ctx, fmt.Sprintf(r.fileEndpoint, r.Bot.Token, file.FilePath))
	if err != nil {
		r.log.Error("download", "chat_id", cid, "error", err)
		r.send(cid, "Could not download the file, please resend it.")
		return
	}

	ctx = solve.WithRequestID(ctx, uuid.NewString())
	res, err := r.Solver.Solve(ctx, util.MakeDataURL(util.SniffMimeHTTP(img), img))
	if err != nil {
		r.send(cid, formatError(err))
		return
	}
	r.send(cid, formatResult(res))
}

func (r *Router) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDownload))
}
