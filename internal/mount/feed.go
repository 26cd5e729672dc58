package mount

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/morphfield/internal/engine/scene"
	"github.com/Faultbox/morphfield/internal/logger"
)

// FeedScroll reads one progress value per line from r and stores it in slot
// until r is exhausted or ctx is cancelled. Blank lines and lines starting
// with '#' are skipped; unparsable lines are logged and skipped. It returns
// the number of values stored.
func FeedScroll(ctx context.Context, r io.Reader, slot *scene.ScrollSlot) (int, error) {
	log := logger.Named("feed")
	sc := bufio.NewScanner(r)

	n := 0
	line := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		line++

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			log.Warn("skipping bad progress value", zap.Int("line", line), zap.String("text", text))
			continue
		}
		slot.Store(v)
		n++
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return n, err
	}
	return n, nil
}
