package config

import (
	"net"
	"net/url"
)

// Database is the node's database name with the configured prefix applied.
func (p PostgresConfig) Database(node PostgresNode) string {
	return p.Prefix + node.Name
}

// DSN is the postgres:// URL for node. extra is merged into the query string.
func (p PostgresConfig) DSN(node PostgresNode, extra url.Values) string {
	query := url.Values{"sslmode": {node.SSLMode}}
	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + p.Database(node),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}
