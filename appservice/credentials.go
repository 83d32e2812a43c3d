package appservice

import (
	"context"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"

	"github.com/armkit/armkit/faults"
	"github.com/armkit/armkit/kudu"
)

// publishingCredentials fetches a web app's publishing credentials from the
// control plane on first use and caches them for the client's lifetime.
type publishingCredentials struct {
	client        *armappservice.WebAppsClient
	resourceGroup string
	site          string

	mu     sync.Mutex
	cached *kudu.Credentials
}

func (p *publishingCredentials) BasicCredentials(ctx context.Context) (kudu.Credentials, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached != nil {
		return *p.cached, nil
	}

	poller, err := p.client.BeginListPublishingCredentials(ctx, p.resourceGroup, p.site, nil)
	if err != nil {
		return kudu.Credentials{}, faults.WrapRemote(err, "fetching publishing credentials of %q", p.site)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return kudu.Credentials{}, faults.WrapRemote(err, "fetching publishing credentials of %q", p.site)
	}
	if resp.Properties == nil || resp.Properties.PublishingUserName == nil || resp.Properties.PublishingPassword == nil {
		return kudu.Credentials{}, faults.Configurationf("web app %q returned incomplete publishing credentials", p.site)
	}

	p.cached = &kudu.Credentials{
		Username: *resp.Properties.PublishingUserName,
		Password: *resp.Properties.PublishingPassword,
	}
	return *p.cached, nil
}
