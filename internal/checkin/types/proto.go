package types

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// The protobuf encodings below use google.protobuf.Struct so that the
// JSON field names stay identical across JSON, HTTP-protobuf and gRPC.

func LoginRequestFromProto(p *structpb.Struct) LoginRequest {
	f := p.GetFields()
	return LoginRequest{
		Login: f["login"].GetStringValue(),
		Senha: f["senha"].GetStringValue(),
	}
}

func (r LoginRequest) ToProto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"login": structpb.NewStringValue(r.Login),
		"senha": structpb.NewStringValue(r.Senha),
	}}
}

func (r LoginResponse) ToProto() *structpb.Struct {
	fields := map[string]*structpb.Value{
		"message":  structpb.NewStringValue(r.Message),
		"decision": structpb.NewStringValue(string(r.Decision)),
	}
	if r.User != nil {
		fields["user"] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"idUsuario":     structpb.NewNumberValue(float64(r.User.IDUsuario)),
			"nome":          structpb.NewStringValue(r.User.Nome),
			"login":         structpb.NewStringValue(r.User.Login),
			"idTipoUsuario": structpb.NewNumberValue(float64(r.User.IDTipoUsuario)),
		}})
	}
	return &structpb.Struct{Fields: fields}
}

func LoginResponseFromProto(p *structpb.Struct) LoginResponse {
	f := p.GetFields()
	resp := LoginResponse{
		Message:  f["message"].GetStringValue(),
		Decision: Decision(f["decision"].GetStringValue()),
	}
	if u := f["user"].GetStructValue(); u != nil {
		uf := u.GetFields()
		resp.User = &UserInfo{
			IDUsuario:     int64(uf["idUsuario"].GetNumberValue()),
			Nome:          uf["nome"].GetStringValue(),
			Login:         uf["login"].GetStringValue(),
			IDTipoUsuario: int(uf["idTipoUsuario"].GetNumberValue()),
		}
	}
	return resp
}

func (r ErrorResponse) ToProto() *structpb.Struct {
	fields := map[string]*structpb.Value{
		"error": structpb.NewStringValue(r.Error),
	}
	if r.Message != "" {
		fields["message"] = structpb.NewStringValue(r.Message)
	}
	return &structpb.Struct{Fields: fields}
}
