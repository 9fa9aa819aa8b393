package names

type Milliseconds = int64

type Bytes = int64
type UUIDv4 = string
