package main

type HistoryConfig struct {
	Uri string `mapstructure:"uri"`
}

func (c *HistoryConfig) GetHistoryUri() string {
	return c.Uri
}
