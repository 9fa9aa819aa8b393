package common

import "github.com/DODOEX/b64huff/utils/general/names"

type JobStatus string

const (
	Success JobStatus = "success" // 完成
	Fail    JobStatus = "fail"    // 读写失败
	Reject  JobStatus = "reject"  // 拒绝处理，e.g.: 输入过大，产物损坏
	Error   JobStatus = "error"   // 内部报错
)

type Direction string

const (
	Encode Direction = "encode"
	Decode Direction = "decode"
)

// 单次编码/解码任务
type JobProfile = struct {
	ID        names.UUIDv4 `json:"id"`
	Direction Direction    `json:"direction"`
	Name      string       `json:"name"`   // 源文件名或存储键
	Target    string       `json:"target"` // 产物文件名或存储键
	Status    JobStatus    `json:"status"`
	Error     string       `json:"error,omitempty"`

	InputBytes  names.Bytes `json:"inputBytes"`
	OutputBytes names.Bytes `json:"outputBytes"`
	Symbols     int64       `json:"symbols"`
	Padding     int         `json:"padding"`
	// 通用哈夫曼(hufio)压缩原始字节的大小，仅在开启 codec.reference 时统计
	ReferenceBytes names.Bytes `json:"referenceBytes,omitempty"`
	Cached         bool        `json:"cached,omitempty"`

	Starttime names.Milliseconds `json:"startTime"`
	Endtime   names.Milliseconds `json:"endTime"`
}
