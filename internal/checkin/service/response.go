package service

import "github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"

const (
	msgLoginOK          = "Login realizado com sucesso!"
	msgBadCredentials   = "Credenciais inválidas"
	msgOutOfWindow      = "Ops! Infelizmente você não chegou a tempo."
	msgAlreadyCheckedIn = "Você já efetuou o login dentro do horário permitido hoje."
)

// Response shapes the client payload. Both bad-credential causes produce
// byte-identical payloads because Admit never distinguishes them.
func (a Admission) Response() types.LoginResponse {
	resp := types.LoginResponse{Decision: a.Decision}

	switch a.Decision {
	case types.DecisionAcceptedPrivileged, types.DecisionAcceptedCheckedIn:
		resp.Message = msgLoginOK
		resp.User = &types.UserInfo{
			IDUsuario:     a.Account.ID,
			Nome:          a.Account.Name,
			Login:         a.Account.Login,
			IDTipoUsuario: int(a.Account.Role),
		}
	case types.DecisionRejectedOutOfWindow:
		resp.Message = msgOutOfWindow
	case types.DecisionRejectedAlreadyCheckedIn:
		resp.Message = msgAlreadyCheckedIn
	default:
		resp.Message = msgBadCredentials
	}

	return resp
}
