package response

import "net/http"

// MsgInternal 500 对外统一文案，不透出内部错误
const MsgInternal = "error interno del servidor"

// CodeMsgMap 中间件等无业务上下文时的默认文案
var CodeMsgMap = map[int]string{
	http.StatusBadRequest:            "solicitud inválida",
	http.StatusNotFound:              "recurso no encontrado",
	http.StatusRequestEntityTooLarge: "el cuerpo de la solicitud es demasiado grande",
	http.StatusTooManyRequests:       "demasiadas solicitudes",
	http.StatusInternalServerError:   MsgInternal,
	http.StatusServiceUnavailable:    "servidor ocupado, intente más tarde",
	http.StatusGatewayTimeout:        "tiempo de espera agotado",
}
