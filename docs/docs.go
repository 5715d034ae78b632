// Package docs 账本聚合 API 的 OpenAPI 描述，布局与 swag init 的输出一致
// 修改 api 包中的 swag 注释后需同步更新本文件，或执行 swag init 重新生成
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/accounts": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "账户"
                ],
                "summary": "获取账户列表",
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "账户"
                ],
                "summary": "创建账户",
                "parameters": [
                    {
                        "description": "账户信息",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.AccountRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "创建成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/accounts/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "账户"
                ],
                "summary": "获取账户详情",
                "parameters": [
                    {
                        "type": "string",
                        "description": "账户ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "账户不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "账户"
                ],
                "summary": "更新账户",
                "parameters": [
                    {
                        "type": "string",
                        "description": "账户ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "账户信息",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.AccountRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "更新成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "账户不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "账户"
                ],
                "summary": "删除账户",
                "parameters": [
                    {
                        "type": "string",
                        "description": "账户ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "删除成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "账户不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/accounts/{id}/balance": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "账户"
                ],
                "summary": "获取账户余额",
                "parameters": [
                    {
                        "type": "string",
                        "description": "账户ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "账户不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/balance/total": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "账户"
                ],
                "summary": "获取总余额",
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/categories": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "类别"
                ],
                "summary": "获取类别列表",
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "类别"
                ],
                "summary": "创建类别",
                "parameters": [
                    {
                        "description": "类别信息",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.CategoryRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "创建成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/categories/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "类别"
                ],
                "summary": "获取类别详情",
                "parameters": [
                    {
                        "type": "string",
                        "description": "类别ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "类别不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "类别"
                ],
                "summary": "更新类别",
                "parameters": [
                    {
                        "type": "string",
                        "description": "类别ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "类别信息",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.CategoryRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "更新成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "类别不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "类别"
                ],
                "summary": "删除类别",
                "parameters": [
                    {
                        "type": "string",
                        "description": "类别ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "删除成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "类别不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/categories/{id}/total": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "类别"
                ],
                "summary": "获取类别合计",
                "parameters": [
                    {
                        "type": "string",
                        "description": "类别ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "开始日期 (2024-01-01)",
                        "name": "start_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "结束日期 (2024-01-31)",
                        "name": "end_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "预设范围 this_month/last_month/this_week/this_year",
                        "name": "range",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "类别不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/transactions": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "交易"
                ],
                "summary": "获取交易列表",
                "parameters": [
                    {
                        "type": "string",
                        "description": "描述关键字",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "开始日期 (2024-01-01)",
                        "name": "start_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "结束日期 (2024-01-31)",
                        "name": "end_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "预设范围 this_month/last_month/this_week/this_year",
                        "name": "range",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "账户ID，逗号分隔",
                        "name": "account_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "类别ID，逗号分隔",
                        "name": "category_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "交易类型，逗号分隔，默认全部",
                        "name": "types",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "页码",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "每页数量",
                        "name": "page_size",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "交易"
                ],
                "summary": "创建交易",
                "parameters": [
                    {
                        "description": "交易信息",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.TransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "创建成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/transactions/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "交易"
                ],
                "summary": "获取交易详情",
                "parameters": [
                    {
                        "type": "string",
                        "description": "交易ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "交易不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "交易"
                ],
                "summary": "更新交易",
                "parameters": [
                    {
                        "type": "string",
                        "description": "交易ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "交易信息",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.TransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "更新成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "交易不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "交易"
                ],
                "summary": "删除交易",
                "parameters": [
                    {
                        "type": "string",
                        "description": "交易ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "删除成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "交易不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/budgets": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "预算"
                ],
                "summary": "获取预算列表",
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "预算"
                ],
                "summary": "创建预算",
                "parameters": [
                    {
                        "description": "预算信息",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.BudgetRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "创建成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/budgets/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "预算"
                ],
                "summary": "获取预算详情",
                "parameters": [
                    {
                        "type": "string",
                        "description": "预算ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "预算不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "预算"
                ],
                "summary": "更新预算",
                "parameters": [
                    {
                        "type": "string",
                        "description": "预算ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "预算信息",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.BudgetRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "更新成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "预算不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "预算"
                ],
                "summary": "删除预算",
                "parameters": [
                    {
                        "type": "string",
                        "description": "预算ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "删除成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "预算不存在",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/budgets/progress": {
            "get": {
                "description": "按预算周期（周/月/年）统计当前周期内该类别的支出",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "预算"
                ],
                "summary": "获取预算进度",
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/reports/summary": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "获取收支汇总",
                "parameters": [
                    {
                        "type": "string",
                        "description": "开始日期 (2024-01-01)",
                        "name": "start_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "结束日期 (2024-01-31)",
                        "name": "end_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "预设范围 this_month/last_month/this_week/this_year",
                        "name": "range",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "账户ID，逗号分隔",
                        "name": "account_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "类别ID，逗号分隔",
                        "name": "category_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "交易类型，逗号分隔，默认全部",
                        "name": "types",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/reports/monthly": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "获取按月收支",
                "parameters": [
                    {
                        "type": "string",
                        "description": "开始日期 (2024-01-01)",
                        "name": "start_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "结束日期 (2024-01-31)",
                        "name": "end_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "预设范围 this_month/last_month/this_week/this_year",
                        "name": "range",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "账户ID，逗号分隔",
                        "name": "account_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "类别ID，逗号分隔",
                        "name": "category_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "交易类型，逗号分隔，默认全部",
                        "name": "types",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/reports/categories": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "获取类别分布",
                "parameters": [
                    {
                        "type": "string",
                        "description": "开始日期 (2024-01-01)",
                        "name": "start_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "结束日期 (2024-01-31)",
                        "name": "end_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "预设范围 this_month/last_month/this_week/this_year",
                        "name": "range",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "账户ID，逗号分隔",
                        "name": "account_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "类别ID，逗号分隔",
                        "name": "category_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "交易类型，逗号分隔，默认全部",
                        "name": "types",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/reports/balance-evolution": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "获取余额变化",
                "parameters": [
                    {
                        "type": "string",
                        "description": "开始日期 (2024-01-01)",
                        "name": "start_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "结束日期 (2024-01-31)",
                        "name": "end_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "预设范围 this_month/last_month/this_week/this_year",
                        "name": "range",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "账户ID，逗号分隔",
                        "name": "account_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "类别ID，逗号分隔",
                        "name": "category_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "交易类型，逗号分隔，默认全部",
                        "name": "types",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "首页"
                ],
                "summary": "获取首页概览",
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/export/csv": {
            "get": {
                "produces": [
                    "text/csv"
                ],
                "tags": [
                    "导出"
                ],
                "summary": "导出交易记录",
                "parameters": [
                    {
                        "type": "string",
                        "description": "开始日期 (2024-01-01)",
                        "name": "start_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "结束日期 (2024-01-31)",
                        "name": "end_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "预设范围 this_month/last_month/this_week/this_year",
                        "name": "range",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "账户ID，逗号分隔",
                        "name": "account_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "类别ID，逗号分隔",
                        "name": "category_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "交易类型，逗号分隔，默认全部",
                        "name": "types",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "CSV 文件",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "请求参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/export/json": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "导出"
                ],
                "summary": "导出交易记录为 JSON",
                "parameters": [
                    {
                        "type": "string",
                        "description": "开始日期 (2024-01-01)",
                        "name": "start_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "结束日期 (2024-01-31)",
                        "name": "end_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "预设范围 this_month/last_month/this_week/this_year",
                        "name": "range",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "账户ID，逗号分隔",
                        "name": "account_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "类别ID，逗号分隔",
                        "name": "category_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "交易类型，逗号分隔，默认全部",
                        "name": "types",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "导出成功",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "请求参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/export/excel": {
            "get": {
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "tags": [
                    "导出"
                ],
                "summary": "导出交易记录为 Excel",
                "parameters": [
                    {
                        "type": "string",
                        "description": "开始日期 (2024-01-01)",
                        "name": "start_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "结束日期 (2024-01-31)",
                        "name": "end_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "预设范围 this_month/last_month/this_week/this_year",
                        "name": "range",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "账户ID，逗号分隔",
                        "name": "account_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "类别ID，逗号分隔",
                        "name": "category_ids",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "交易类型，逗号分隔，默认全部",
                        "name": "types",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Excel文件",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "参数错误",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "api.AccountRequest": {
            "type": "object",
            "required": [
                "name",
                "type"
            ],
            "properties": {
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                },
                "initial_balance": {
                    "type": "string"
                }
            }
        },
        "api.BudgetRequest": {
            "type": "object",
            "required": [
                "category_id",
                "period"
            ],
            "properties": {
                "category_id": {
                    "type": "string"
                },
                "amount": {
                    "type": "string"
                },
                "period": {
                    "type": "string"
                },
                "start_date": {
                    "type": "string"
                },
                "account_id": {
                    "type": "string",
                    "description": "为空表示所有账户"
                }
            }
        },
        "api.CategoryRequest": {
            "type": "object",
            "required": [
                "name",
                "type"
            ],
            "properties": {
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "color": {
                    "type": "string",
                    "description": "颜色代码，如 #ef4444"
                },
                "icon": {
                    "type": "string"
                },
                "parent_id": {
                    "type": "string"
                }
            }
        },
        "api.Response": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer"
                },
                "data": {},
                "message": {
                    "type": "string"
                }
            }
        },
        "api.TransactionRequest": {
            "type": "object",
            "required": [
                "account_id",
                "type"
            ],
            "properties": {
                "account_id": {
                    "type": "string"
                },
                "category_id": {
                    "type": "string"
                },
                "amount": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "date": {
                    "type": "string",
                    "description": "为空时取当前时间"
                },
                "type": {
                    "type": "string"
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "target_account_id": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "账本聚合 API",
	Description:      "个人账本服务：账户、交易、类别、预算的管理，以及余额、预算进度、报表与导出",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
