package model

type CreateInvocation struct {
	ID     string                 `json:"id" example:"5f1e3a4e-8f0c-4b0e-9a52-6f6f0b9c1d2e" format:"uuid"`
	Inputs map[string]interface{} `json:"inputs" example:"{\"ramuda_action\":\"ping\"}"`
}

type CreateInvocationSuccess struct {
	ID       string      `json:"id" example:"5f1e3a4e-8f0c-4b0e-9a52-6f6f0b9c1d2e" format:"uuid"`
	Function string      `json:"function" example:"sample"`
	Result   interface{} `json:"result" swaggertype:"string" example:"alive"`
}

type Function struct {
	Name        string `json:"name" example:"sample"`
	Description string `json:"description"`
}

type Pong struct {
	Message string `json:"message" example:"pong"`
}
