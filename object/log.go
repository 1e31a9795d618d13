package object

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("objkit.object")
