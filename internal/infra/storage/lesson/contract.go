package lesson

import "github.com/equiclub/EQC-BookingService/pkg/dbtx"

// Переиспользуем интерфейсы из dbtx для работы с БД
type DBExecutor = dbtx.DBExecutor
type TxExecutor = dbtx.TxExecutor
