package shared

import (
	"log"
	"os"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// NewEtcdClient connects to the endpoints in B64HUFF_ETCD_CONFIG_ENDPOINTS
// (space separated). It returns nil when the variable is unset.
func NewEtcdClient() *clientv3.Client {
	v := strings.TrimSpace(os.Getenv(EnvPrefix + "ETCD_CONFIG_ENDPOINTS"))
	if v == "" {
		return nil
	}
	e := strings.Fields(v)

	// 创建 etcd 客户端
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   e,
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		log.Printf("Error create etcd client: %v", err)
		return nil
	}
	return client
}
