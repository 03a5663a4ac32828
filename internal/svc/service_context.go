package svc

import (
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/udonlab/kanjo-trace-bot/internal/config"
	"github.com/udonlab/kanjo-trace-bot/internal/llm"
	"github.com/udonlab/kanjo-trace-bot/internal/logger"
	"github.com/udonlab/kanjo-trace-bot/internal/slackapp"

	"golang.org/x/net/proxy"
)

// ServiceContext 外部サービスクライアントの束。
// SlackApp と LLMClient は認証情報が無ければ nil のままで、モード分岐の根拠になる。
type ServiceContext struct {
	Config         *config.Config
	TransportProxy *http.Transport
	SlackApp       *slackapp.App
	LLMClient      *llm.Client
}

func NewServiceContext(c *config.Config) *ServiceContext {
	// SOCKS5プロキシを作成
	var transportProxy *http.Transport
	if c.Sock5Proxy.Enable {
		socks5Proxy := fmt.Sprintf("%s:%d", c.Sock5Proxy.Host, c.Sock5Proxy.Port)
		dialer, err := proxy.SOCKS5("tcp", socks5Proxy, nil, proxy.Direct)
		if err != nil {
			logger.Fatalf("SOCKS5プロキシの作成に失敗, %v", err)
		}

		transportProxy = &http.Transport{
			Dial:            dialer.Dial,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	var httpClient *http.Client
	if transportProxy != nil {
		httpClient = &http.Client{Transport: transportProxy}
	}

	svcCtx := &ServiceContext{
		Config:         c,
		TransportProxy: transportProxy,
	}
	if c.Slack.APIToken != "" {
		svcCtx.SlackApp = slackapp.NewApp(c.Slack.APIToken, httpClient)
	}
	if c.LLM.APIKey != "" {
		svcCtx.LLMClient = llm.NewClient(&c.LLM, httpClient)
	}
	return svcCtx
}
