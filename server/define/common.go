package define

type BaseResp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

type ListResp struct {
	Start int    `json:"start"`
	Total uint64 `json:"total"`
}
