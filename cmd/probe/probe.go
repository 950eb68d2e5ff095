package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SafeMPC/pox-signer/internal/util/command"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	verboseFlag string = "verbose"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}

// probeURL issues a GET against url and fails on anything but 200.
func probeURL(ctx context.Context, url string, timeout time.Duration, out io.Writer, verbose bool) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to create probe request for %s", url)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "probe request to %s failed", url)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read probe response")
	}

	if verbose {
		fmt.Fprintf(out, "%s %d\n%s\n", url, res.StatusCode, body)
	}

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("probe %s returned status %d", url, res.StatusCode)
	}

	return nil
}
