package scoring

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"deskhive/pkg/client"
	"deskhive/pkg/model"
)

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	IsSuitable bool    `json:"is_suitable"`
	Confidence float64 `json:"confidence"`
}

// HTTPClassifier calls a remote suitability model over HTTP.
type HTTPClassifier struct {
	client *client.HttpClient
}

func NewHTTPClassifier(baseURL string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		client: client.NewHttpClient(baseURL, timeout),
	}
}

func (c *HTTPClassifier) Predict(ctx context.Context, requester *model.Requester, workspace *model.Workspace, rctx RequestContext) (*Prediction, error) {
	resp, err := c.client.POST(ctx, "/predict", predictRequest{
		Text: FeatureText(requester, workspace, rctx),
	})
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, client.GetErrorMessage(resp))
	}

	var out predictResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}

	if out.Confidence < 0 || out.Confidence > 1 {
		return nil, fmt.Errorf("classifier confidence out of range: %f", out.Confidence)
	}

	return &Prediction{
		IsSuitable: out.IsSuitable,
		Confidence: out.Confidence,
	}, nil
}
